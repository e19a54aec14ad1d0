package models

import (
	"fmt"
	"strings"
)

// Level is a student's competitive division.
type Level string

const (
	LevelNovice   Level = "Novice"
	LevelAdvanced Level = "Advanced"
)

// Valid reports whether l is one of the known divisions.
func (l Level) Valid() bool {
	return l == LevelNovice || l == LevelAdvanced
}

func (l Level) String() string {
	return string(l)
}

// ParseLevel converts user input into a Level. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "novice":
		return LevelNovice, nil
	case "advanced":
		return LevelAdvanced, nil
	default:
		return "", fmt.Errorf("%w: unknown level %q", ErrValidation, s)
	}
}

// LevelFilter turns a filter argument into a Level. Known levels are
// normalised; anything else is returned as given, which filters select as
// "no filter".
func LevelFilter(s string) Level {
	if l, err := ParseLevel(s); err == nil {
		return l
	}
	return Level(strings.TrimSpace(s))
}
