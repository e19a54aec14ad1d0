package models

import (
	"fmt"
	"strings"
)

// StudentKey is the identity of a student in the store.
type StudentKey struct {
	FirstName string
	LastName  string
	Email     string
}

// Student is a competitor together with the participations loaded for it.
type Student struct {
	// ID is the store's row id. It is not part of the identity.
	ID int64

	FirstName string
	LastName  string
	Email     string
	Level     Level

	// Participations are kept in store insertion order.
	Participations []Participation
}

// Key returns the identity key used by store lookups.
func (s *Student) Key() StudentKey {
	return StudentKey{FirstName: s.FirstName, LastName: s.LastName, Email: s.Email}
}

// DisplayName returns "First Last".
func (s *Student) DisplayName() string {
	return s.FirstName + " " + s.LastName
}

// SameDisplayName reports whether both students show the same full name.
// Distinct students can share a display name; see the package doc.
func (s *Student) SameDisplayName(other *Student) bool {
	return s.DisplayName() == other.DisplayName()
}

// ParticipationCount is the number of results attached to the student.
func (s *Student) ParticipationCount() int {
	return len(s.Participations)
}

// TotalProblems sums ProblemsSolved over all participations.
func (s *Student) TotalProblems() int {
	total := 0
	for _, p := range s.Participations {
		total += p.ProblemsSolved
	}
	return total
}

// AddParticipation appends a result, keeping insertion order.
func (s *Student) AddParticipation(p Participation) {
	s.Participations = append(s.Participations, p)
}

// SplitName splits a display name on its first space. Everything after the
// first space is the last name, so "Mary Ann Lee" becomes ("Mary", "Ann Lee").
func SplitName(displayName string) (first, last string, err error) {
	first, last, ok := strings.Cut(strings.TrimSpace(displayName), " ")
	if !ok || first == "" || strings.TrimSpace(last) == "" {
		return "", "", fmt.Errorf("%w: name %q must include both first and last name", ErrValidation, displayName)
	}
	return first, last, nil
}
