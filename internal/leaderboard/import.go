package leaderboard

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/leaderboard/internal/ingest"
	"github.com/mmynk/leaderboard/internal/models"
)

// ImportReport describes a finished or interrupted import.
type ImportReport struct {
	BatchID string
	Teams   int
}

// storeSink writes parsed rows straight to the store. It is only used while
// mu is held.
type storeSink struct {
	lb *Leaderboard
}

func (s storeSink) AddTeamResult(ctx context.Context, team models.TeamResult) error {
	err := s.lb.store.AddTeamResult(ctx, team)
	s.lb.metrics.ObserveOperation("add_team_result", err)
	return err
}

// ImportSheet records every row of a results sheet under competition. Rows
// before a malformed one stay recorded. The roster is rebuilt once the sheet
// has been read, on success or failure.
func (lb *Leaderboard) ImportSheet(ctx context.Context, competition string, r io.Reader) (ImportReport, error) {
	report := ImportReport{BatchID: uuid.NewString()}

	err := lb.mutate(ctx, "import_sheet", func() error {
		n, err := ingest.NewParser(competition).Parse(ctx, r, storeSink{lb: lb})
		report.Teams = n
		return err
	})
	if err != nil {
		slog.Error("Sheet import stopped", "batch", report.BatchID, "competition", competition, "teams", report.Teams, "error", err)
		return report, err
	}

	slog.Info("Sheet imported", "batch", report.BatchID, "competition", competition, "teams", report.Teams)
	return report, nil
}
