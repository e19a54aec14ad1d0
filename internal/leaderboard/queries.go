package leaderboard

import (
	"context"

	"github.com/mmynk/leaderboard/internal/models"
	"github.com/mmynk/leaderboard/internal/ranking"
)

// Status is a snapshot of the store and roster sizes.
type Status struct {
	Empty        bool
	Students     int
	Competitions int
}

// IsEmpty reports whether the store has no students.
func (lb *Leaderboard) IsEmpty(ctx context.Context) (bool, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.store.IsEmpty(ctx)
}

// Status reports whether data is loaded and how much.
func (lb *Leaderboard) Status(ctx context.Context) (Status, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	empty, err := lb.store.IsEmpty(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Empty:        empty,
		Students:     lb.roster.Len(),
		Competitions: len(lb.roster.Competitions()),
	}, nil
}

// Students returns the roster in its current order.
func (lb *Leaderboard) Students() []*models.Student {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.roster.Students()
}

// Competitions returns the competition catalog.
func (lb *Leaderboard) Competitions() []models.Competition {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.roster.Competitions()
}

// SortByParticipationCount reorders the cached roster, most competitions
// first, and returns it. The order persists until the next rebuild.
func (lb *Leaderboard) SortByParticipationCount() []*models.Student {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	ranking.SortByParticipationCount(lb.roster.Entries())
	return lb.roster.Students()
}

// SortByTotalProblems reorders the cached roster, most problems solved
// first, and returns it. The order persists until the next rebuild.
func (lb *Leaderboard) SortByTotalProblems() []*models.Student {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	ranking.SortByTotalProblems(lb.roster.Entries())
	return lb.roster.Students()
}

// FilterByLevel returns the students at level in roster order. An
// unrecognised level returns everyone.
func (lb *Leaderboard) FilterByLevel(level models.Level) []*models.Student {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return ranking.FilterByLevel(lb.roster.Entries(), level)
}

// All returns the whole roster in its current order.
func (lb *Leaderboard) All() []*models.Student {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return ranking.All(lb.roster.Entries())
}

// Standings sorts the roster as requested, filters it by level and returns
// the summary rows.
func (lb *Leaderboard) Standings(order SortOrder, level models.Level) []models.StandingRow {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	switch order {
	case SortParticipation:
		ranking.SortByParticipationCount(lb.roster.Entries())
	case SortProblems:
		ranking.SortByTotalProblems(lb.roster.Entries())
	}
	return ranking.Summarize(ranking.FilterByLevel(lb.roster.Entries(), level))
}

// CompetitionResults lists the results of the named competition.
func (lb *Leaderboard) CompetitionResults(ctx context.Context, name string) ([]models.CompetitionResultRow, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.roster.CompetitionResults(ctx, lb.store, name)
}

// StudentResults lists the participations of the named student.
func (lb *Leaderboard) StudentResults(displayName string) ([]models.StudentResultRow, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.roster.StudentResults(displayName)
}

// AllResults lists every participation, competition by competition.
func (lb *Leaderboard) AllResults(ctx context.Context) ([]models.ResultRow, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.roster.AllResults(ctx, lb.store)
}
