package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/leaderboard/internal/models"
)

type recordingSink struct {
	teams []models.TeamResult
	err   error
}

func (s *recordingSink) AddTeamResult(_ context.Context, team models.TeamResult) error {
	if s.err != nil {
		return s.err
	}
	s.teams = append(s.teams, team)
	return nil
}

const sheet = `Spring Cup results
1,Team A,North,Ann Lee,ann@x.com,,,,,3,5
Advanced #
1,Team B,North,Ben Koh,ben@x.com,Cat Diaz,cat@x.com,,,8,1
2,Team C,South,Dan Wu,dan@x.com,Eve Ng,,Fay Oh,fay@x.com,6,2
short,row
3,Team D,East,,,,,,,,
4,Team E,West,Gus Ray,gus@x.com,,,,,4,3
Novice ~
1,Team F,North,Hal Li,hal@x.com,,,,,5,1
`

func TestParseBlocks(t *testing.T) {
	sink := &recordingSink{}

	n, err := NewParser("Spring Cup").Parse(context.Background(), strings.NewReader(sheet), sink)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, sink.teams, 3)

	t.Run("advanced block", func(t *testing.T) {
		team := sink.teams[0]
		assert.Equal(t, models.LevelAdvanced, team.Level)
		assert.Equal(t, "Spring Cup", team.Competition)
		assert.Equal(t, 8, team.ProblemsSolved)
		assert.Equal(t, 1, team.Placement)
		assert.Equal(t, []models.TeamMember{
			{Name: "Ben Koh", Email: "ben@x.com"},
			{Name: "Cat Diaz", Email: "cat@x.com"},
		}, team.PresentMembers())
	})

	t.Run("member without email is dropped", func(t *testing.T) {
		team := sink.teams[1]
		assert.Equal(t, models.LevelAdvanced, team.Level)
		assert.Equal(t, []models.TeamMember{
			{Name: "Dan Wu", Email: "dan@x.com"},
			{Name: "Fay Oh", Email: "fay@x.com"},
		}, team.PresentMembers())
	})

	t.Run("terminator closes the block until the next marker", func(t *testing.T) {
		// Gus Ray sits after the terminator row and before "~".
		for _, team := range sink.teams {
			assert.NotEqual(t, "Gus Ray", team.Members[0].Name)
		}
		team := sink.teams[2]
		assert.Equal(t, models.LevelNovice, team.Level)
		assert.Equal(t, "Hal Li", team.Members[0].Name)
	})
}

func TestParseAdvancedUntilNoviceMarker(t *testing.T) {
	input := "#\n" +
		"1,A,S,Ann Lee,ann@x.com,,,,,1,1\n" +
		"2,B,S,Ben Koh,ben@x.com,,,,,2,2\n" +
		"~\n" +
		"3,C,S,Cat Diaz,cat@x.com,,,,,3,3\n"
	sink := &recordingSink{}

	_, err := NewParser("Cup").Parse(context.Background(), strings.NewReader(input), sink)
	require.NoError(t, err)

	levels := make([]models.Level, len(sink.teams))
	for i, team := range sink.teams {
		levels[i] = team.Level
	}
	assert.Equal(t, []models.Level{models.LevelAdvanced, models.LevelAdvanced, models.LevelNovice}, levels)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine string
		recorded int
	}{
		{
			name:     "non-numeric problems solved",
			input:    "#\n1,A,S,Ann Lee,ann@x.com,,,,,many,1\n",
			wantLine: "line 2",
		},
		{
			name:     "non-numeric placement",
			input:    "#\n1,A,S,Ann Lee,ann@x.com,,,,,1,1\n2,B,S,Ben Koh,ben@x.com,,,,,2,first\n",
			wantLine: "line 3",
			recorded: 1,
		},
		{
			name:     "too few fields",
			input:    "~\n1,A,S,Ann Lee,ann@x.com,,,\n",
			wantLine: "line 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			n, err := NewParser("Cup").Parse(context.Background(), strings.NewReader(tt.input), sink)
			require.ErrorIs(t, err, models.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantLine)
			assert.Equal(t, tt.recorded, n)
		})
	}
}

func TestParseSinkError(t *testing.T) {
	boom := errors.New("boom")
	sink := &recordingSink{err: boom}

	_, err := NewParser("Cup").Parse(context.Background(), strings.NewReader("#\n1,A,S,Ann Lee,ann@x.com,,,,,1,1\n"), sink)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseRequiresCompetition(t *testing.T) {
	_, err := NewParser("  ").Parse(context.Background(), strings.NewReader("#\n"), &recordingSink{})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestParseIgnoresRowsOutsideBlocks(t *testing.T) {
	sink := &recordingSink{}
	n, err := NewParser("Cup").Parse(context.Background(), strings.NewReader("1,A,S,Ann Lee,ann@x.com,,,,,x,y\n"), sink)
	require.NoError(t, err)
	assert.Zero(t, n)
}
