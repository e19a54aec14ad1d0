// Package ingest reads competition result sheets and turns every data line
// into a team result.
//
// A sheet is line oriented. A line containing "#" opens an Advanced block and
// a line containing "~" opens a Novice block. Inside a block each line is a
// comma separated row:
//
//	0-2   ignored (team number, team name, school)
//	3, 4  member 1 name, email
//	5, 6  member 2 name, email
//	7, 8  member 3 name, email
//	9     problems solved
//	10    placement
//
// Rows with fewer than five fields are skipped. A row whose member 1 name and
// email are both empty closes the block. Lines outside a block are ignored.
package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mmynk/leaderboard/internal/models"
)

const (
	advancedMarker = "#"
	noviceMarker   = "~"

	minFields      = 5
	rowFields      = 11
	fieldSolved    = 9
	fieldPlacement = 10
)

// Sink receives one team result per data row.
type Sink interface {
	AddTeamResult(ctx context.Context, team models.TeamResult) error
}

// Parser reads sheets for a single competition.
type Parser struct {
	competition string
}

// NewParser returns a parser that files every row under competition.
func NewParser(competition string) *Parser {
	return &Parser{competition: strings.TrimSpace(competition)}
}

// Parse reads r to the end and hands every data row to sink in order. It
// stops at the first malformed row or sink error; rows before it stay
// recorded. It returns the number of rows recorded.
func (p *Parser) Parse(ctx context.Context, r io.Reader, sink Sink) (int, error) {
	if p.competition == "" {
		return 0, fmt.Errorf("%w: competition name is required", models.ErrValidation)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		level    models.Level
		recorded int
		lineNo   int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.Contains(line, advancedMarker):
			level = models.LevelAdvanced
			continue
		case strings.Contains(line, noviceMarker):
			level = models.LevelNovice
			continue
		case level == "":
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < minFields {
			continue
		}
		if strings.TrimSpace(fields[3]) == "" && strings.TrimSpace(fields[4]) == "" {
			level = ""
			continue
		}

		team, err := p.parseRow(fields, level)
		if err != nil {
			return recorded, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := ctx.Err(); err != nil {
			return recorded, err
		}
		if err := sink.AddTeamResult(ctx, team); err != nil {
			return recorded, fmt.Errorf("line %d: %w", lineNo, err)
		}
		recorded++
	}
	if err := scanner.Err(); err != nil {
		return recorded, fmt.Errorf("failed to read sheet: %w", err)
	}
	return recorded, nil
}

func (p *Parser) parseRow(fields []string, level models.Level) (models.TeamResult, error) {
	if len(fields) < rowFields {
		return models.TeamResult{}, fmt.Errorf("%w: row has %d fields, need %d", models.ErrValidation, len(fields), rowFields)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	solved, err := strconv.Atoi(fields[fieldSolved])
	if err != nil {
		return models.TeamResult{}, fmt.Errorf("%w: problems solved %q is not a number", models.ErrValidation, fields[fieldSolved])
	}
	placement, err := strconv.Atoi(fields[fieldPlacement])
	if err != nil {
		return models.TeamResult{}, fmt.Errorf("%w: placement %q is not a number", models.ErrValidation, fields[fieldPlacement])
	}

	return models.TeamResult{
		Level: level,
		Members: []models.TeamMember{
			{Name: fields[3], Email: fields[4]},
			{Name: fields[5], Email: fields[6]},
			{Name: fields[7], Email: fields[8]},
		},
		ProblemsSolved: solved,
		Placement:      placement,
		Competition:    p.competition,
	}, nil
}
