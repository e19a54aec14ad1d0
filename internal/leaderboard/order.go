package leaderboard

import (
	"fmt"
	"strings"

	"github.com/mmynk/leaderboard/internal/models"
)

// SortOrder selects how Standings orders the roster.
type SortOrder string

const (
	SortNone          SortOrder = "none"
	SortParticipation SortOrder = "participation"
	SortProblems      SortOrder = "problems"
)

// ParseSortOrder accepts "participation", "problems", "none" or "".
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortNone:
		return SortNone, nil
	case SortParticipation:
		return SortParticipation, nil
	case SortProblems:
		return SortProblems, nil
	default:
		return "", fmt.Errorf("%w: unknown sort order %q", models.ErrValidation, s)
	}
}
