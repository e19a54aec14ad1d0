// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/leaderboard/internal/models"
)

// Store defines the relational store behind the leaderboard.
// It owns three relations (students, competitions, results). The schema
// declares no foreign keys; referential integrity comes from the write
// protocol: students and competitions are upserted before any result row
// that references them is inserted.
type Store interface {
	// UpsertStudent returns the id of the student matching all three of
	// firstName, lastName and email, inserting it when absent.
	// On a hit the supplied level is ignored.
	UpsertStudent(ctx context.Context, firstName, lastName, email string, level models.Level) (int64, error)

	// UpsertCompetition returns the id of the competition with this exact name,
	// inserting it when absent.
	UpsertCompetition(ctx context.Context, name string) (int64, error)

	// AddResult inserts a result row unconditionally. Adding the same
	// (student, competition) pair twice creates two rows.
	AddResult(ctx context.Context, studentID, competitionID int64, problemsSolved, placement int) error

	// AddTeamResult records one result row per present team member in a single
	// transaction. On any failure nothing is written.
	AddTeamResult(ctx context.Context, team models.TeamResult) error

	// RemoveStudent deletes the first student named firstName lastName (email
	// is not considered) together with its result rows.
	// Returns models.ErrNotFound when there is no such student.
	RemoveStudent(ctx context.Context, firstName, lastName string) error

	// RemoveCompetition deletes the named competition and its result rows.
	// Returns models.ErrNotFound when there is no such competition.
	RemoveCompetition(ctx context.Context, name string) error

	// WipeAll deletes every row of every relation in one transaction.
	WipeAll(ctx context.Context) error

	// IsEmpty reports whether the students relation has no rows.
	IsEmpty(ctx context.Context) (bool, error)

	// ListStudents returns every student row ordered by id.
	ListStudents(ctx context.Context) ([]models.StoredStudent, error)

	// ListStudentResults returns a student's result rows in insertion order.
	ListStudentResults(ctx context.Context, studentID int64) ([]models.StoredResult, error)

	// ListCompetitionResults returns a competition's result rows in insertion order.
	ListCompetitionResults(ctx context.Context, competitionID int64) ([]models.StoredResult, error)

	// ListCompetitions returns every competition ordered by id.
	ListCompetitions(ctx context.Context) ([]models.Competition, error)

	// CompetitionName resolves a competition id. Returns models.ErrNotFound
	// when the id does not exist.
	CompetitionName(ctx context.Context, competitionID int64) (string, error)

	// StudentName resolves a student id to its display name. Returns
	// models.ErrNotFound when the id does not exist.
	StudentName(ctx context.Context, studentID int64) (string, error)

	// Close releases any resources held by the store.
	Close() error
}
