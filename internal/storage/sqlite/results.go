package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/leaderboard/internal/models"
)

// AddResult inserts a result row. There is no uniqueness check: the same
// (student, competition) pair may appear more than once.
func (s *SQLiteStore) AddResult(ctx context.Context, studentID, competitionID int64, problemsSolved, placement int) error {
	return addResult(ctx, s.db, studentID, competitionID, problemsSolved, placement)
}

func addResult(ctx context.Context, q querier, studentID, competitionID int64, problemsSolved, placement int) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO results (student_id, competition_id, problems_solved, placement) VALUES (?, ?, ?, ?)",
		studentID, competitionID, problemsSolved, placement,
	)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// AddTeamResult upserts the competition once, then upserts every present
// member and gives each the same result row. All of it happens in one
// transaction; a failure on any member leaves the store untouched.
func (s *SQLiteStore) AddTeamResult(ctx context.Context, team models.TeamResult) error {
	if err := team.Validate(); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		competitionID, err := upsertCompetition(ctx, tx, team.Competition)
		if err != nil {
			return err
		}

		for _, member := range team.PresentMembers() {
			first, last, err := models.SplitName(member.Name)
			if err != nil {
				return err
			}
			studentID, err := upsertStudent(ctx, tx, first, last, member.Email, team.Level)
			if err != nil {
				return err
			}
			if err := addResult(ctx, tx, studentID, competitionID, team.ProblemsSolved, team.Placement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: failed to add team result for %q: %w", models.ErrIntegrity, team.Competition, err)
	}
	return nil
}

// ListStudentResults returns a student's result rows by insertion order.
func (s *SQLiteStore) ListStudentResults(ctx context.Context, studentID int64) ([]models.StoredResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT student_id, competition_id, problems_solved, placement
		 FROM results WHERE student_id = ? ORDER BY id`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list student results: %w", err)
	}
	return scanResults(rows)
}

// ListCompetitionResults returns a competition's result rows by insertion order.
func (s *SQLiteStore) ListCompetitionResults(ctx context.Context, competitionID int64) ([]models.StoredResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT student_id, competition_id, problems_solved, placement
		 FROM results WHERE competition_id = ? ORDER BY id`,
		competitionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list competition results: %w", err)
	}
	return scanResults(rows)
}

// scanResults drains and closes rows.
func scanResults(rows *sql.Rows) ([]models.StoredResult, error) {
	defer rows.Close()

	var results []models.StoredResult
	for rows.Next() {
		var r models.StoredResult
		if err := rows.Scan(&r.StudentID, &r.CompetitionID, &r.ProblemsSolved, &r.Placement); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return results, nil
}
