package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/leaderboard/internal/models"
)

// UpsertCompetition returns the id of the competition with this exact name,
// inserting a new row when none exists.
func (s *SQLiteStore) UpsertCompetition(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: competition name is required", models.ErrValidation)
	}
	return upsertCompetition(ctx, s.db, name)
}

func upsertCompetition(ctx context.Context, q querier, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		"SELECT id FROM competitions WHERE name = ? ORDER BY id LIMIT 1",
		name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up competition: %w", err)
	}

	res, err := q.ExecContext(ctx, "INSERT INTO competitions (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert competition: %w", err)
	}
	return insertedID(res)
}

// RemoveCompetition deletes the named competition and every result row that
// references it.
func (s *SQLiteStore) RemoveCompetition(ctx context.Context, name string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM competitions WHERE name = ? ORDER BY id LIMIT 1",
			name,
		).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("competition %q: %w", name, models.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to look up competition: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM results WHERE competition_id = ?", id); err != nil {
			return fmt.Errorf("%w: failed to delete competition results: %w", models.ErrIntegrity, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM competitions WHERE id = ?", id); err != nil {
			return fmt.Errorf("%w: failed to delete competition: %w", models.ErrIntegrity, err)
		}
		return nil
	})
}

// ListCompetitions returns the whole catalog ordered by id.
func (s *SQLiteStore) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM competitions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	defer rows.Close()

	var competitions []models.Competition
	for rows.Next() {
		var c models.Competition
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan competition: %w", err)
		}
		competitions = append(competitions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating competitions: %w", err)
	}

	return competitions, nil
}

// CompetitionName resolves a competition id to its name.
func (s *SQLiteStore) CompetitionName(ctx context.Context, competitionID int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM competitions WHERE id = ?",
		competitionID,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("competition id %d: %w", competitionID, models.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get competition name: %w", err)
	}
	return name, nil
}
