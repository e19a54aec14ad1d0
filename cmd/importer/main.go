// Command importer loads result sheets into the leaderboard database and
// writes the CSV exports without starting the server.
//
//	importer -db data/leaderboard.db -competition "Spring Cup" -file spring.csv
//	importer -db data/leaderboard.db -export-summary summary.csv -sort problems
//	importer -hash-password 'correct horse'
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/leaderboard/internal/auth"
	"github.com/mmynk/leaderboard/internal/export"
	"github.com/mmynk/leaderboard/internal/leaderboard"
	"github.com/mmynk/leaderboard/internal/models"
	"github.com/mmynk/leaderboard/internal/storage/sqlite"
	"github.com/mmynk/leaderboard/pkg/logging"
)

type options struct {
	dbPath        string
	competition   string
	file          string
	exportResults string
	exportSummary string
	sort          string
	level         string
	hashPassword  string
	logLevel      string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	fs.StringVar(&opts.dbPath, "db", "./data/leaderboard.db", "path to the SQLite database")
	fs.StringVar(&opts.competition, "competition", "", "competition the sheet belongs to")
	fs.StringVar(&opts.file, "file", "", "results sheet to import")
	fs.StringVar(&opts.exportResults, "export-results", "", "write every participation as CSV to this path")
	fs.StringVar(&opts.exportSummary, "export-summary", "", "write the leaderboard summary as CSV to this path")
	fs.StringVar(&opts.sort, "sort", "none", "summary order: participation, problems or none")
	fs.StringVar(&opts.level, "level", "", "summary level filter: Novice or Advanced; anything else keeps everyone")
	fs.StringVar(&opts.hashPassword, "hash-password", "", "print the bcrypt hash of this admin password and exit")
	fs.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if opts.file != "" && opts.competition == "" {
		return options{}, fmt.Errorf("-competition is required with -file")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.Setup(opts.logLevel)

	if opts.hashPassword != "" {
		hash, err := auth.NewAdminAuthenticator("").HashPassword(opts.hashPassword)
		if err != nil {
			slog.Error("Failed to hash password", "error", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	if err := run(context.Background(), opts); err != nil {
		slog.Error("Importer failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	store, err := sqlite.New(opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	lb, err := leaderboard.New(ctx, store, nil)
	if err != nil {
		return err
	}

	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return fmt.Errorf("failed to open sheet: %w", err)
		}
		defer f.Close()

		report, err := lb.ImportSheet(ctx, opts.competition, f)
		if err != nil {
			return fmt.Errorf("import stopped after %d teams: %w", report.Teams, err)
		}
	}

	if opts.exportResults != "" {
		rows, err := lb.AllResults(ctx)
		if err != nil {
			return err
		}
		if err := writeFile(opts.exportResults, func(f *os.File) error { return export.WriteResults(f, rows) }); err != nil {
			return err
		}
		slog.Info("Results exported", "path", opts.exportResults, "rows", len(rows))
	}

	if opts.exportSummary != "" {
		order, err := leaderboard.ParseSortOrder(opts.sort)
		if err != nil {
			return err
		}
		rows := lb.Standings(order, models.LevelFilter(opts.level))
		if err := writeFile(opts.exportSummary, func(f *os.File) error { return export.WriteSummary(f, rows) }); err != nil {
			return err
		}
		slog.Info("Summary exported", "path", opts.exportSummary, "rows", len(rows))
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
