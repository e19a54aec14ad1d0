// Package roster holds the in-memory read-model rebuilt from the store:
// every student with its participations, plus the competition catalog.
//
// Two distinct students can share a display name (they differ by email).
// Name-based queries resolve to the first match in roster order.
package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/leaderboard/internal/models"
	"github.com/mmynk/leaderboard/internal/storage"
)

// Roster is the read-model. It is not safe for concurrent use; the
// leaderboard serialises access to it.
type Roster struct {
	students     []*models.Student
	competitions []models.Competition
}

// New returns an empty roster.
func New() *Roster {
	return &Roster{}
}

// Load discards the current contents and rebuilds the roster from the store.
// On error the roster is left empty.
func (r *Roster) Load(ctx context.Context, store storage.Store) error {
	r.students = nil
	r.competitions = nil

	rows, err := store.ListStudents(ctx)
	if err != nil {
		return fmt.Errorf("failed to load students: %w", err)
	}

	students := make([]*models.Student, 0, len(rows))
	for _, row := range rows {
		s := &models.Student{
			ID:        row.ID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Level:     row.Level,
		}

		results, err := store.ListStudentResults(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("failed to load results for student %d: %w", row.ID, err)
		}
		for _, res := range results {
			name, err := store.CompetitionName(ctx, res.CompetitionID)
			if err != nil {
				return resolveError(err, "competition", res.CompetitionID)
			}
			s.AddParticipation(models.Participation{
				CompetitionID:   res.CompetitionID,
				CompetitionName: name,
				ProblemsSolved:  res.ProblemsSolved,
				Placement:       res.Placement,
			})
		}
		students = append(students, s)
	}

	competitions, err := store.ListCompetitions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load competitions: %w", err)
	}

	r.students = students
	r.competitions = competitions
	return nil
}

// resolveError turns a missed id lookup during a rebuild into an integrity
// error: a result row points at a row that does not exist.
func resolveError(err error, kind string, id int64) error {
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%w: result references missing %s %d", models.ErrIntegrity, kind, id)
	}
	return fmt.Errorf("failed to resolve %s %d: %w", kind, id, err)
}

// Students returns the roster in its current order. The slice is a copy; the
// students are shared.
func (r *Roster) Students() []*models.Student {
	out := make([]*models.Student, len(r.students))
	copy(out, r.students)
	return out
}

// Entries exposes the roster slice itself so ranking can reorder it in place.
func (r *Roster) Entries() []*models.Student {
	return r.students
}

// Competitions returns the catalog ordered by id.
func (r *Roster) Competitions() []models.Competition {
	out := make([]models.Competition, len(r.competitions))
	copy(out, r.competitions)
	return out
}

// Len is the number of students in the roster.
func (r *Roster) Len() int {
	return len(r.students)
}

// findCompetition returns the first catalog entry with this exact name.
func (r *Roster) findCompetition(name string) (models.Competition, bool) {
	for _, c := range r.competitions {
		if c.Name == name {
			return c, true
		}
	}
	return models.Competition{}, false
}

// CompetitionResults lists one row per result of the named competition, in
// insertion order, with student display names looked up in the store.
func (r *Roster) CompetitionResults(ctx context.Context, store storage.Store, name string) ([]models.CompetitionResultRow, error) {
	c, ok := r.findCompetition(name)
	if !ok {
		return nil, fmt.Errorf("%w: competition %q", models.ErrNotFound, name)
	}
	return competitionRows(ctx, store, c)
}

func competitionRows(ctx context.Context, store storage.Store, c models.Competition) ([]models.CompetitionResultRow, error) {
	results, err := store.ListCompetitionResults(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results for competition %q: %w", c.Name, err)
	}

	rows := make([]models.CompetitionResultRow, 0, len(results))
	for _, res := range results {
		studentName, err := store.StudentName(ctx, res.StudentID)
		if err != nil {
			return nil, resolveError(err, "student", res.StudentID)
		}
		rows = append(rows, models.CompetitionResultRow{
			StudentName:    studentName,
			ProblemsSolved: res.ProblemsSolved,
			Placement:      res.Placement,
		})
	}
	return rows, nil
}

// Find returns the first student whose display name matches.
func (r *Roster) Find(displayName string) (*models.Student, error) {
	first, last, err := models.SplitName(displayName)
	if err != nil {
		return nil, err
	}

	probe := &models.Student{FirstName: first, LastName: last}
	var found *models.Student
	matches := 0
	for _, s := range r.students {
		if s.SameDisplayName(probe) {
			if found == nil {
				found = s
			}
			matches++
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: student %q", models.ErrNotFound, displayName)
	}
	if matches > 1 {
		slog.Warn("Display name matches several students, using the first",
			"name", displayName, "matches", matches, "email", found.Email)
	}
	return found, nil
}

// StudentResults lists the participations of the named student.
func (r *Roster) StudentResults(displayName string) ([]models.StudentResultRow, error) {
	s, err := r.Find(displayName)
	if err != nil {
		return nil, err
	}

	rows := make([]models.StudentResultRow, 0, len(s.Participations))
	for _, p := range s.Participations {
		rows = append(rows, models.StudentResultRow{
			CompetitionName: p.CompetitionName,
			ProblemsSolved:  p.ProblemsSolved,
			Placement:       p.Placement,
		})
	}
	return rows, nil
}

// AllResults lists every participation competition by competition, in
// catalog order and then insertion order within a competition.
func (r *Roster) AllResults(ctx context.Context, store storage.Store) ([]models.ResultRow, error) {
	var rows []models.ResultRow
	for _, c := range r.competitions {
		results, err := competitionRows(ctx, store, c)
		if err != nil {
			return nil, err
		}
		for _, res := range results {
			rows = append(rows, models.ResultRow{
				CompetitionName: c.Name,
				StudentName:     res.StudentName,
				ProblemsSolved:  res.ProblemsSolved,
				Placement:       res.Placement,
			})
		}
	}
	return rows, nil
}
