package service

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/mmynk/leaderboard/internal/export"
	"github.com/mmynk/leaderboard/internal/leaderboard"
	"github.com/mmynk/leaderboard/internal/models"
)

// ExportHandler serves the CSV exports:
//
//	GET /export/results.csv                      every participation, by competition
//	GET /export/summary.csv?sort=problems&level= leaderboard summary
func ExportHandler(lb *leaderboard.Leaderboard) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /export/results.csv", func(w http.ResponseWriter, r *http.Request) {
		rows, err := lb.AllResults(r.Context())
		if err != nil {
			slog.Error("Results export failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteResults(&buf, rows); err != nil {
			slog.Error("Results export failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeCSV(w, "results.csv", buf.Bytes())
	})

	mux.HandleFunc("GET /export/summary.csv", func(w http.ResponseWriter, r *http.Request) {
		order, err := leaderboard.ParseSortOrder(r.URL.Query().Get("sort"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		level := models.LevelFilter(r.URL.Query().Get("level"))

		var buf bytes.Buffer
		if err := export.WriteSummary(&buf, lb.Standings(order, level)); err != nil {
			slog.Error("Summary export failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeCSV(w, "summary.csv", buf.Bytes())
	})
	return mux
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := w.Write(data); err != nil {
		slog.Warn("Failed to write export", "file", filename, "error", err)
	}
}
