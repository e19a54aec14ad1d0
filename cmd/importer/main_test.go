package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-db", "x.db", "-competition", "Cup", "-file", "s.csv", "-sort", "problems"})
	require.NoError(t, err)
	assert.Equal(t, "x.db", opts.dbPath)
	assert.Equal(t, "Cup", opts.competition)
	assert.Equal(t, "s.csv", opts.file)
	assert.Equal(t, "problems", opts.sort)

	_, err = parseFlags([]string{"-file", "s.csv"})
	assert.Error(t, err)
}

func TestRunImportsAndExports(t *testing.T) {
	dir := t.TempDir()
	sheet := filepath.Join(dir, "spring.csv")
	require.NoError(t, os.WriteFile(sheet, []byte(
		"Advanced #\n"+
			"1,Team A,North,Ann Lee,ann@x.com,,,,,5,2\n"+
			"2,Team B,North,Ben Koh,ben@x.com,,,,,8,1\n"), 0o600))

	opts := options{
		dbPath:        filepath.Join(dir, "lb.db"),
		competition:   "Spring Cup",
		file:          sheet,
		exportResults: filepath.Join(dir, "results.csv"),
		exportSummary: filepath.Join(dir, "summary.csv"),
		sort:          "problems",
	}
	require.NoError(t, run(context.Background(), opts))

	results, err := os.ReadFile(opts.exportResults)
	require.NoError(t, err)
	assert.Equal(t,
		"Competition Name,Student Name,Problems Solved,Placement\n"+
			"Spring Cup,Ann Lee,5,2\n"+
			"Spring Cup,Ben Koh,8,1\n",
		string(results))

	summary, err := os.ReadFile(opts.exportSummary)
	require.NoError(t, err)
	assert.Equal(t, "Name,Problems Solved,# of competitions\nBen Koh,8,1\nAnn Lee,5,1\n", string(summary))
}

func TestRunRejectsBadSheet(t *testing.T) {
	dir := t.TempDir()
	sheet := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(sheet, []byte("~\n1,A,S,Ann Lee,ann@x.com,,,,,five,1\n"), 0o600))

	err := run(context.Background(), options{
		dbPath:      filepath.Join(dir, "lb.db"),
		competition: "Cup",
		file:        sheet,
		sort:        "none",
	})
	assert.ErrorContains(t, err, "line 2")
}
