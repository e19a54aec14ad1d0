// Package leaderboard owns the store and the cached roster and keeps them in
// step: every write is followed by a full rebuild of the roster. The rebuild
// is simple and always correct; it is not incremental.
package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmynk/leaderboard/internal/metrics"
	"github.com/mmynk/leaderboard/internal/models"
	"github.com/mmynk/leaderboard/internal/roster"
	"github.com/mmynk/leaderboard/internal/storage"
)

// Leaderboard serialises every operation behind one mutex, so callers on
// several goroutines observe the same order of writes and rebuilds.
type Leaderboard struct {
	mu      sync.Mutex
	store   storage.Store
	roster  *roster.Roster
	metrics *metrics.Metrics
}

// New wraps store and loads the roster. m may be nil.
func New(ctx context.Context, store storage.Store, m *metrics.Metrics) (*Leaderboard, error) {
	lb := &Leaderboard{
		store:   store,
		roster:  roster.New(),
		metrics: m,
	}
	if err := lb.rebuild(ctx); err != nil {
		return nil, err
	}
	return lb, nil
}

// rebuild must be called with mu held.
func (lb *Leaderboard) rebuild(ctx context.Context) error {
	start := time.Now()
	if err := lb.roster.Load(ctx, lb.store); err != nil {
		slog.Error("Roster rebuild failed", "error", err)
		return fmt.Errorf("failed to rebuild roster: %w", err)
	}
	lb.metrics.ObserveRebuild(start, lb.roster.Len(), len(lb.roster.Competitions()))
	slog.Debug("Roster rebuilt", "students", lb.roster.Len(), "duration", time.Since(start))
	return nil
}

// mutate runs a write and then rebuilds the roster, whether or not the write
// succeeded. The write error takes precedence over a rebuild error.
func (lb *Leaderboard) mutate(ctx context.Context, op string, write func() error) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	err := write()
	lb.metrics.ObserveOperation(op, err)

	rebuildErr := lb.rebuild(ctx)
	if err != nil {
		return err
	}
	return rebuildErr
}

// requireData fails with models.ErrEmpty when there are no students.
func (lb *Leaderboard) requireData(ctx context.Context) error {
	empty, err := lb.store.IsEmpty(ctx)
	if err != nil {
		return err
	}
	if empty {
		return models.ErrEmpty
	}
	return nil
}

// AddTeamResult records one result row per present team member.
func (lb *Leaderboard) AddTeamResult(ctx context.Context, team models.TeamResult) error {
	return lb.mutate(ctx, "add_team_result", func() error {
		return lb.store.AddTeamResult(ctx, team)
	})
}

// AddStudentResult records a single student's result in a competition.
func (lb *Leaderboard) AddStudentResult(ctx context.Context, student models.TeamMember, level models.Level, competition string, problemsSolved, placement int) error {
	return lb.AddTeamResult(ctx, models.TeamResult{
		Level:          level,
		Members:        []models.TeamMember{student},
		ProblemsSolved: problemsSolved,
		Placement:      placement,
		Competition:    competition,
	})
}

// AddCompetition adds a competition with no results. Adding an existing name
// is a no-op.
func (lb *Leaderboard) AddCompetition(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: competition name is required", models.ErrValidation)
	}
	return lb.mutate(ctx, "add_competition", func() error {
		_, err := lb.store.UpsertCompetition(ctx, name)
		return err
	})
}

// RemoveStudent removes the first student with this display name and all of
// its results.
func (lb *Leaderboard) RemoveStudent(ctx context.Context, displayName string) error {
	first, last, err := models.SplitName(displayName)
	if err != nil {
		return err
	}
	return lb.mutate(ctx, "remove_student", func() error {
		if err := lb.requireData(ctx); err != nil {
			return err
		}
		return lb.store.RemoveStudent(ctx, first, last)
	})
}

// RemoveCompetition removes the named competition and all of its results.
func (lb *Leaderboard) RemoveCompetition(ctx context.Context, name string) error {
	return lb.mutate(ctx, "remove_competition", func() error {
		if err := lb.requireData(ctx); err != nil {
			return err
		}
		return lb.store.RemoveCompetition(ctx, strings.TrimSpace(name))
	})
}

// Wipe deletes everything.
func (lb *Leaderboard) Wipe(ctx context.Context) error {
	return lb.mutate(ctx, "wipe", func() error {
		if err := lb.requireData(ctx); err != nil {
			return err
		}
		return lb.store.WipeAll(ctx)
	})
}
