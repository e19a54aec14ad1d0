package models

import "fmt"

// MaxTeamSize is the largest team a single result line can carry.
const MaxTeamSize = 3

// TeamMember is one member of a team result as it arrives from the outside:
// a display name and an email.
type TeamMember struct {
	Name  string
	Email string
}

// Present reports whether the member should be recorded. Optional members are
// only recorded when both name and email are given.
func (m TeamMember) Present() bool {
	return m.Name != "" && m.Email != ""
}

// TeamResult is one team's result in one competition. Every present member
// gets a result row with the same score and placement.
type TeamResult struct {
	Level          Level
	Members        []TeamMember
	ProblemsSolved int
	Placement      int
	Competition    string
}

// PresentMembers returns member 1 plus every optional member that is present.
func (t TeamResult) PresentMembers() []TeamMember {
	if len(t.Members) == 0 {
		return nil
	}
	members := []TeamMember{t.Members[0]}
	for _, m := range t.Members[1:] {
		if m.Present() {
			members = append(members, m)
		}
	}
	return members
}

// Validate checks the team shape and score ranges.
func (t TeamResult) Validate() error {
	if len(t.Members) == 0 || len(t.Members) > MaxTeamSize {
		return fmt.Errorf("%w: team must have between 1 and %d members, got %d", ErrValidation, MaxTeamSize, len(t.Members))
	}
	if !t.Level.Valid() {
		return fmt.Errorf("%w: unknown level %q", ErrValidation, t.Level)
	}
	if t.Competition == "" {
		return fmt.Errorf("%w: competition name is required", ErrValidation)
	}
	if t.ProblemsSolved < 0 {
		return fmt.Errorf("%w: problems solved cannot be negative", ErrValidation)
	}
	if t.Placement < 1 {
		return fmt.Errorf("%w: placement must be at least 1", ErrValidation)
	}
	for _, m := range t.PresentMembers() {
		if _, _, err := SplitName(m.Name); err != nil {
			return err
		}
	}
	return nil
}
