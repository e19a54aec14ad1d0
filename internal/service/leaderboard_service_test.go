package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/leaderboard/internal/auth"
	"github.com/mmynk/leaderboard/internal/leaderboard"
	"github.com/mmynk/leaderboard/internal/metrics"
	"github.com/mmynk/leaderboard/internal/middleware"
	"github.com/mmynk/leaderboard/internal/storage/sqlite"
)

const testPassword = "let-me-in-please"

// setupTestServer starts the services behind the same interceptors as the
// server binary and returns an unauthenticated client.
func setupTestServer(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	m := metrics.New(prometheus.NewRegistry())
	lb, err := leaderboard.New(context.Background(), store, m)
	if err != nil {
		t.Fatalf("failed to create leaderboard: %v", err)
	}

	hash, err := auth.NewAdminAuthenticator("").HashPassword(testPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(m),
		middleware.RequireAdmin(jwtManager, IsAdminProcedure),
	)

	mux := http.NewServeMux()
	mux.Handle(NewLeaderboardServiceHandler(NewLeaderboardService(lb), interceptors))
	mux.Handle(NewAuthServiceHandler(NewAuthService(auth.NewAdminAuthenticator(hash), jwtManager, logger), interceptors))
	mux.Handle("/export/", ExportHandler(lb))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return NewClient(server.Client(), server.URL), server
}

// adminClient logs in and returns the same client carrying the token.
func adminClient(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()
	client, server := setupTestServer(t)
	if _, err := client.Login(context.Background(), testPassword); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return client, server
}

func team(competition, level string, solved, placement int, members ...Member) *AddTeamResultRequest {
	return &AddTeamResultRequest{
		Level:          level,
		Members:        members,
		ProblemsSolved: solved,
		Placement:      placement,
		Competition:    competition,
	}
}

func TestLogin(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	_, err := client.Login(ctx, "wrong password")
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	assert.Empty(t, client.Token)

	_, err = client.Login(ctx, "")
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	resp, err := client.Login(ctx, testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, resp.Token, client.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestWritesRequireAdmin(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	_, err := client.AddCompetition(ctx, "Spring Cup")
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	client.Token = "garbage"
	_, err = client.Wipe(ctx)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	// Reads stay public.
	client.Token = ""
	status, err := client.GetStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Empty)
}

func TestAddTeamResultAndStandings(t *testing.T) {
	client, _ := adminClient(t)
	ctx := context.Background()

	resp, err := client.AddTeamResult(ctx, team("Spring Cup", "Novice", 5, 2, Member{Name: "Ann Lee", Email: "ann@x.com"}))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Students)

	resp, err = client.AddTeamResult(ctx, team("Spring Cup", "novice", 8, 1, Member{Name: "Ben Koh", Email: "ben@x.com"}))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Students)
	assert.Equal(t, 1, resp.Competitions)

	standings, err := client.ListStandings(ctx, &ListStandingsRequest{Sort: "problems"})
	require.NoError(t, err)
	assert.Equal(t, []Standing{
		{Rank: 1, Name: "Ben Koh", ProblemsSolved: 8, Competitions: 1},
		{Rank: 2, Name: "Ann Lee", ProblemsSolved: 5, Competitions: 1},
	}, standings.Standings)

	filtered, err := client.ListStandings(ctx, &ListStandingsRequest{Level: "Advanced"})
	require.NoError(t, err)
	assert.Empty(t, filtered.Standings)
}

func TestTeamWithAbsentThirdMember(t *testing.T) {
	client, _ := adminClient(t)
	ctx := context.Background()

	_, err := client.AddTeamResult(ctx, team("Fall Open", "Advanced", 6, 3,
		Member{Name: "Ann Lee", Email: "ann@x.com"},
		Member{Name: "Ben Koh", Email: "ben@x.com"},
		Member{},
	))
	require.NoError(t, err)

	results, err := client.GetCompetitionResults(ctx, "Fall Open")
	require.NoError(t, err)
	assert.Equal(t, []CompetitionResult{
		{StudentName: "Ann Lee", ProblemsSolved: 6, Placement: 3},
		{StudentName: "Ben Koh", ProblemsSolved: 6, Placement: 3},
	}, results.Results)
}

func TestErrorCodes(t *testing.T) {
	client, _ := adminClient(t)
	ctx := context.Background()

	t.Run("failed precondition on empty store", func(t *testing.T) {
		_, err := client.Wipe(ctx)
		assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
		_, err = client.RemoveStudent(ctx, "Ann Lee")
		assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
	})

	_, err := client.AddStudentResult(ctx, &AddStudentResultRequest{
		Name: "Ann Lee", Email: "ann@x.com", Level: "Novice", Competition: "Spring", ProblemsSolved: 3, Placement: 1,
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
		code connect.Code
	}{
		{"unknown student", func() error { _, err := client.GetStudentResults(ctx, "Zed Q"); return err }, connect.CodeNotFound},
		{"unknown competition", func() error { _, err := client.GetCompetitionResults(ctx, "Winter"); return err }, connect.CodeNotFound},
		{"remove unknown competition", func() error { _, err := client.RemoveCompetition(ctx, "Winter"); return err }, connect.CodeNotFound},
		{"single word name", func() error { _, err := client.GetStudentResults(ctx, "Ann"); return err }, connect.CodeInvalidArgument},
		{"unknown level", func() error {
			_, err := client.AddTeamResult(ctx, team("Spring", "Expert", 1, 1, Member{Name: "Ben Koh", Email: "b@x.com"}))
			return err
		}, connect.CodeInvalidArgument},
		{"no members", func() error { _, err := client.AddTeamResult(ctx, team("Spring", "Novice", 1, 1)); return err }, connect.CodeInvalidArgument},
		{"unknown sort", func() error { _, err := client.ListStandings(ctx, &ListStandingsRequest{Sort: "name"}); return err }, connect.CodeInvalidArgument},
		{"bad sheet", func() error { _, err := client.ImportSheet(ctx, "Spring", "#\n1,A,S,Ben Koh,b@x.com,,,,,x,1\n"); return err }, connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, connect.CodeOf(tt.call()))
		})
	}
}

func TestRemoveAndWipe(t *testing.T) {
	client, _ := adminClient(t)
	ctx := context.Background()

	_, err := client.AddTeamResult(ctx, team("Spring", "Novice", 4, 2,
		Member{Name: "Ann Lee", Email: "ann@x.com"},
		Member{Name: "Ben Koh", Email: "ben@x.com"},
	))
	require.NoError(t, err)
	_, err = client.AddCompetition(ctx, "Winter")
	require.NoError(t, err)

	resp, err := client.RemoveStudent(ctx, "Ann Lee")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Students)

	resp, err = client.RemoveCompetition(ctx, "Spring")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Competitions)

	history, err := client.GetStudentResults(ctx, "Ben Koh")
	require.NoError(t, err)
	assert.Empty(t, history.Results)

	resp, err = client.Wipe(ctx)
	require.NoError(t, err)
	assert.Equal(t, MutationResponse{}, *resp)

	status, err := client.GetStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Empty)
}

func TestImportSheetAndExports(t *testing.T) {
	client, server := adminClient(t)
	ctx := context.Background()

	sheet := "Advanced #\n" +
		"1,Team A,North,Ann Lee,ann@x.com,Ben Koh,ben@x.com,,,8,1\n" +
		"Novice ~\n" +
		"1,Team B,South,Cat Diaz,cat@x.com,,,,,4,1\n"

	imported, err := client.ImportSheet(ctx, "Spring Cup", sheet)
	require.NoError(t, err)
	assert.Equal(t, 2, imported.Teams)
	assert.Equal(t, 3, imported.Students)
	assert.NotEmpty(t, imported.BatchID)

	competitions, err := client.ListCompetitions(ctx)
	require.NoError(t, err)
	require.Len(t, competitions.Competitions, 1)
	assert.Equal(t, "Spring Cup", competitions.Competitions[0].Name)

	t.Run("results csv", func(t *testing.T) {
		body := get(t, server.URL+"/export/results.csv", http.StatusOK)
		assert.Equal(t,
			"Competition Name,Student Name,Problems Solved,Placement\n"+
				"Spring Cup,Ann Lee,8,1\n"+
				"Spring Cup,Ben Koh,8,1\n"+
				"Spring Cup,Cat Diaz,4,1\n",
			body)
	})

	t.Run("summary csv filtered to novice", func(t *testing.T) {
		body := get(t, server.URL+"/export/summary.csv?sort=problems&level=novice", http.StatusOK)
		assert.Equal(t, "Name,Problems Solved,# of competitions\nCat Diaz,4,1\n", body)
	})

	t.Run("summary csv rejects unknown sort", func(t *testing.T) {
		get(t, server.URL+"/export/summary.csv?sort=name", http.StatusBadRequest)
	})
}

func get(t *testing.T, url string, wantStatus int) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, "body: %s", body)
	if wantStatus == http.StatusOK {
		assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv"))
	}
	return string(body)
}

func TestAdminDisabled(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	lb, err := leaderboard.New(context.Background(), store, nil)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle(NewLeaderboardServiceHandler(NewLeaderboardService(lb),
		connect.WithInterceptors(middleware.RequireAdmin(nil, IsAdminProcedure))))
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	_, err = client.AddCompetition(context.Background(), "Spring")
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	_, err = client.ListCompetitions(context.Background())
	assert.NoError(t, err)
}

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func TestLoginWithoutSigningSecret(t *testing.T) {
	hash, err := auth.NewAdminAuthenticator("").HashPassword(testPassword)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mux := http.NewServeMux()
	mux.Handle(NewAuthServiceHandler(NewAuthService(auth.NewAdminAuthenticator(hash), nil, logger)))
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	_, err = client.Login(context.Background(), testPassword)
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
	assert.Empty(t, client.Token)
}

func TestListStandingsUnknownLevelKeepsEveryone(t *testing.T) {
	client, server := adminClient(t)
	ctx := context.Background()

	_, err := client.AddTeamResult(ctx, team("Spring", "Novice", 5, 2, Member{Name: "Ann Lee", Email: "ann@x.com"}))
	require.NoError(t, err)
	_, err = client.AddTeamResult(ctx, team("Spring", "Advanced", 8, 1, Member{Name: "Ben Koh", Email: "ben@x.com"}))
	require.NoError(t, err)

	resp, err := client.ListStandings(ctx, &ListStandingsRequest{Sort: "problems", Level: "Expert"})
	require.NoError(t, err)
	assert.Len(t, resp.Standings, 2)

	body := get(t, server.URL+"/export/summary.csv?sort=problems&level=Expert", http.StatusOK)
	assert.Equal(t, "Name,Problems Solved,# of competitions\nBen Koh,8,1\nAnn Lee,5,1\n", body)
}

func TestWriteLogsCarryRequestAndSubject(t *testing.T) {
	client, _ := adminClient(t)

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	_, err := client.AddCompetition(context.Background(), "Winter")
	require.NoError(t, err)

	var line string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, "AddCompetition request received") {
			line = l
		}
	}
	require.NotEmpty(t, line, "logs: %s", buf.String())
	assert.Contains(t, line, "subject="+auth.AdminSubject)
	assert.Regexp(t, `request_id=[0-9a-f-]{36}`, line)
}
