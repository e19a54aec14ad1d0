// Package export writes leaderboard data as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mmynk/leaderboard/internal/models"
)

var (
	resultsHeader = []string{"Competition Name", "Student Name", "Problems Solved", "Placement"}
	summaryHeader = []string{"Name", "Problems Solved", "# of competitions"}
)

// WriteResults writes one line per participation in the order given.
func WriteResults(w io.Writer, rows []models.ResultRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultsHeader); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.CompetitionName,
			r.StudentName,
			strconv.Itoa(r.ProblemsSolved),
			strconv.Itoa(r.Placement),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write result row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary writes one line per student in the order given.
func WriteSummary(w io.Writer, rows []models.StandingRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Name,
			strconv.Itoa(r.ProblemsSolved),
			strconv.Itoa(r.Competitions),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
