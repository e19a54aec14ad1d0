package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/leaderboard/internal/models"
)

// UpsertStudent returns the id of the student with this exact first name,
// last name and email, inserting a new row when none exists.
func (s *SQLiteStore) UpsertStudent(ctx context.Context, firstName, lastName, email string, level models.Level) (int64, error) {
	if firstName == "" || lastName == "" {
		return 0, fmt.Errorf("%w: student needs both first and last name", models.ErrValidation)
	}
	if !level.Valid() {
		return 0, fmt.Errorf("%w: unknown level %q", models.ErrValidation, level)
	}
	return upsertStudent(ctx, s.db, firstName, lastName, email, level)
}

func upsertStudent(ctx context.Context, q querier, firstName, lastName, email string, level models.Level) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		"SELECT id FROM students WHERE firstname = ? AND lastname = ? AND email = ? ORDER BY id LIMIT 1",
		firstName, lastName, email,
	).Scan(&id)
	if err == nil {
		// Existing row wins; the level passed in is not applied.
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up student: %w", err)
	}

	res, err := q.ExecContext(ctx,
		"INSERT INTO students (firstname, lastname, email, level) VALUES (?, ?, ?, ?)",
		firstName, lastName, email, string(level),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert student: %w", err)
	}
	return insertedID(res)
}

// RemoveStudent deletes the lowest-id student named firstName lastName and
// every result row that references it.
func (s *SQLiteStore) RemoveStudent(ctx context.Context, firstName, lastName string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM students WHERE firstname = ? AND lastname = ? ORDER BY id LIMIT 1",
			firstName, lastName,
		).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("student %s %s: %w", firstName, lastName, models.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to look up student: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM results WHERE student_id = ?", id); err != nil {
			return fmt.Errorf("%w: failed to delete student results: %w", models.ErrIntegrity, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id); err != nil {
			return fmt.Errorf("%w: failed to delete student: %w", models.ErrIntegrity, err)
		}
		return nil
	})
}

// ListStudents returns every student row ordered by id.
func (s *SQLiteStore) ListStudents(ctx context.Context) ([]models.StoredStudent, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, firstname, lastname, email, level FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []models.StoredStudent
	for rows.Next() {
		var st models.StoredStudent
		var level string
		if err := rows.Scan(&st.ID, &st.FirstName, &st.LastName, &st.Email, &level); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		st.Level = models.Level(level)
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}

	return students, nil
}

// StudentName resolves a student id to "First Last".
func (s *SQLiteStore) StudentName(ctx context.Context, studentID int64) (string, error) {
	var first, last string
	err := s.db.QueryRowContext(ctx,
		"SELECT firstname, lastname FROM students WHERE id = ?",
		studentID,
	).Scan(&first, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("student id %d: %w", studentID, models.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get student name: %w", err)
	}
	return first + " " + last, nil
}
