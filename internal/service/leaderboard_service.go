package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/leaderboard/internal/leaderboard"
	"github.com/mmynk/leaderboard/internal/middleware"
	"github.com/mmynk/leaderboard/internal/models"
)

// LeaderboardService implements the leaderboard.v1.LeaderboardService RPCs.
type LeaderboardService struct {
	lb *leaderboard.Leaderboard
}

// NewLeaderboardService creates a new LeaderboardService over lb.
func NewLeaderboardService(lb *leaderboard.Leaderboard) *LeaderboardService {
	return &LeaderboardService{lb: lb}
}

// connectError maps leaderboard errors onto Connect codes.
func connectError(err error) *connect.Error {
	switch {
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, models.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, models.ErrEmpty):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, models.ErrIntegrity):
		return connect.NewError(connect.CodeAborted, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// mutationResponse reports the sizes after a write, read under one lock.
func (s *LeaderboardService) mutationResponse(ctx context.Context) (*connect.Response[MutationResponse], error) {
	status, err := s.lb.Status(ctx)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&MutationResponse{
		Students:     status.Students,
		Competitions: status.Competitions,
	}), nil
}

// ListStandings returns the leaderboard rows, optionally sorted and filtered.
func (s *LeaderboardService) ListStandings(ctx context.Context, req *connect.Request[ListStandingsRequest]) (*connect.Response[ListStandingsResponse], error) {
	slog.Info("ListStandings request received", "sort", req.Msg.Sort, "level", req.Msg.Level)

	order, err := leaderboard.ParseSortOrder(req.Msg.Sort)
	if err != nil {
		return nil, connectError(err)
	}
	rows := s.lb.Standings(order, models.LevelFilter(req.Msg.Level))
	standings := make([]Standing, len(rows))
	for i, row := range rows {
		standings[i] = Standing{
			Rank:           i + 1,
			Name:           row.Name,
			ProblemsSolved: row.ProblemsSolved,
			Competitions:   row.Competitions,
		}
	}

	slog.Info("ListStandings successful", "count", len(standings))
	return connect.NewResponse(&ListStandingsResponse{Standings: standings}), nil
}

// ListCompetitions returns the competition catalog.
func (s *LeaderboardService) ListCompetitions(ctx context.Context, req *connect.Request[ListCompetitionsRequest]) (*connect.Response[ListCompetitionsResponse], error) {
	slog.Info("ListCompetitions request received")

	catalog := s.lb.Competitions()
	competitions := make([]Competition, len(catalog))
	for i, c := range catalog {
		competitions[i] = Competition{ID: c.ID, Name: c.Name}
	}

	return connect.NewResponse(&ListCompetitionsResponse{Competitions: competitions}), nil
}

// GetCompetitionResults returns every result of one competition.
func (s *LeaderboardService) GetCompetitionResults(ctx context.Context, req *connect.Request[GetCompetitionResultsRequest]) (*connect.Response[GetCompetitionResultsResponse], error) {
	slog.Info("GetCompetitionResults request received", "competition", req.Msg.Name)

	rows, err := s.lb.CompetitionResults(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("GetCompetitionResults failed", "competition", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}

	results := make([]CompetitionResult, len(rows))
	for i, row := range rows {
		results[i] = CompetitionResult{
			StudentName:    row.StudentName,
			ProblemsSolved: row.ProblemsSolved,
			Placement:      row.Placement,
		}
	}

	return connect.NewResponse(&GetCompetitionResultsResponse{
		Competition: req.Msg.Name,
		Results:     results,
	}), nil
}

// GetStudentResults returns the participations of one student.
func (s *LeaderboardService) GetStudentResults(ctx context.Context, req *connect.Request[GetStudentResultsRequest]) (*connect.Response[GetStudentResultsResponse], error) {
	slog.Info("GetStudentResults request received", "student", req.Msg.Name)

	rows, err := s.lb.StudentResults(req.Msg.Name)
	if err != nil {
		slog.Error("GetStudentResults failed", "student", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}

	results := make([]StudentResult, len(rows))
	for i, row := range rows {
		results[i] = StudentResult{
			CompetitionName: row.CompetitionName,
			ProblemsSolved:  row.ProblemsSolved,
			Placement:       row.Placement,
		}
	}

	return connect.NewResponse(&GetStudentResultsResponse{
		Name:    req.Msg.Name,
		Results: results,
	}), nil
}

// GetStatus reports whether any data is loaded.
func (s *LeaderboardService) GetStatus(ctx context.Context, req *connect.Request[GetStatusRequest]) (*connect.Response[GetStatusResponse], error) {
	status, err := s.lb.Status(ctx)
	if err != nil {
		slog.Error("GetStatus failed", "error", err)
		return nil, connectError(err)
	}
	return connect.NewResponse(&GetStatusResponse{
		Empty:        status.Empty,
		Students:     status.Students,
		Competitions: status.Competitions,
	}), nil
}

// AddTeamResult records a team's result for every present member.
func (s *LeaderboardService) AddTeamResult(ctx context.Context, req *connect.Request[AddTeamResultRequest]) (*connect.Response[MutationResponse], error) {
	slog.Info("AddTeamResult request received",
		"competition", req.Msg.Competition,
		"members_count", len(req.Msg.Members),
		"request_id", middleware.GetRequestID(ctx),
		"subject", middleware.GetSubject(ctx),
	)

	level, err := models.ParseLevel(req.Msg.Level)
	if err != nil {
		return nil, connectError(err)
	}

	members := make([]models.TeamMember, len(req.Msg.Members))
	for i, m := range req.Msg.Members {
		members[i] = models.TeamMember{Name: strings.TrimSpace(m.Name), Email: strings.TrimSpace(m.Email)}
	}

	err = s.lb.AddTeamResult(ctx, models.TeamResult{
		Level:          level,
		Members:        members,
		ProblemsSolved: req.Msg.ProblemsSolved,
		Placement:      req.Msg.Placement,
		Competition:    strings.TrimSpace(req.Msg.Competition),
	})
	if err != nil {
		slog.Error("AddTeamResult failed", "competition", req.Msg.Competition, "error", err)
		return nil, connectError(err)
	}

	return s.mutationResponse(ctx)
}

// AddStudentResult records one student's result in a competition.
func (s *LeaderboardService) AddStudentResult(ctx context.Context, req *connect.Request[AddStudentResultRequest]) (*connect.Response[MutationResponse], error) {
	slog.Info("AddStudentResult request received", "student", req.Msg.Name, "competition", req.Msg.Competition,
		"request_id", middleware.GetRequestID(ctx), "subject", middleware.GetSubject(ctx))

	level, err := models.ParseLevel(req.Msg.Level)
	if err != nil {
		return nil, connectError(err)
	}

	member := models.TeamMember{Name: strings.TrimSpace(req.Msg.Name), Email: strings.TrimSpace(req.Msg.Email)}
	err = s.lb.AddStudentResult(ctx, member, level, strings.TrimSpace(req.Msg.Competition), req.Msg.ProblemsSolved, req.Msg.Placement)
	if err != nil {
		slog.Error("AddStudentResult failed", "student", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}

	return s.mutationResponse(ctx)
}

// AddCompetition adds an empty competition to the catalog.
func (s *LeaderboardService) AddCompetition(ctx context.Context, req *connect.Request[AddCompetitionRequest]) (*connect.Response[MutationResponse], error) {
	slog.Info("AddCompetition request received", "competition", req.Msg.Name,
		"request_id", middleware.GetRequestID(ctx), "subject", middleware.GetSubject(ctx))

	if err := s.lb.AddCompetition(ctx, req.Msg.Name); err != nil {
		slog.Error("AddCompetition failed", "competition", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}

	return s.mutationResponse(ctx)
}

// RemoveStudent removes a student and its results.
func (s *LeaderboardService) RemoveStudent(ctx context.Context, req *connect.Request[RemoveStudentRequest]) (*connect.Response[MutationResponse], error) {
	slog.Info("RemoveStudent request received", "student", req.Msg.Name,
		"request_id", middleware.GetRequestID(ctx), "subject", middleware.GetSubject(ctx))

	if err := s.lb.RemoveStudent(ctx, req.Msg.Name); err != nil {
		slog.Error("RemoveStudent failed", "student", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Student removed", "student", req.Msg.Name)
	return s.mutationResponse(ctx)
}

// RemoveCompetition removes a competition and its results.
func (s *LeaderboardService) RemoveCompetition(ctx context.Context, req *connect.Request[RemoveCompetitionRequest]) (*connect.Response[MutationResponse], error) {
	slog.Info("RemoveCompetition request received", "competition", req.Msg.Name,
		"request_id", middleware.GetRequestID(ctx), "subject", middleware.GetSubject(ctx))

	if err := s.lb.RemoveCompetition(ctx, req.Msg.Name); err != nil {
		slog.Error("RemoveCompetition failed", "competition", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Competition removed", "competition", req.Msg.Name)
	return s.mutationResponse(ctx)
}

// Wipe deletes all data.
func (s *LeaderboardService) Wipe(ctx context.Context, req *connect.Request[WipeRequest]) (*connect.Response[MutationResponse], error) {
	slog.Warn("Wipe request received", "request_id", middleware.GetRequestID(ctx), "subject", middleware.GetSubject(ctx))

	if err := s.lb.Wipe(ctx); err != nil {
		slog.Error("Wipe failed", "error", err)
		return nil, connectError(err)
	}

	return s.mutationResponse(ctx)
}

// ImportSheet records every row of an uploaded results sheet.
func (s *LeaderboardService) ImportSheet(ctx context.Context, req *connect.Request[ImportSheetRequest]) (*connect.Response[ImportSheetResponse], error) {
	slog.Info("ImportSheet request received", "competition", req.Msg.Competition, "bytes", len(req.Msg.Content),
		"request_id", middleware.GetRequestID(ctx), "subject", middleware.GetSubject(ctx))

	report, err := s.lb.ImportSheet(ctx, req.Msg.Competition, strings.NewReader(req.Msg.Content))
	if err != nil {
		slog.Error("ImportSheet failed", "batch", report.BatchID, "request_id", middleware.GetRequestID(ctx), "error", err)
		return nil, connectError(err)
	}

	status, err := s.lb.Status(ctx)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ImportSheetResponse{
		BatchID:      report.BatchID,
		Teams:        report.Teams,
		Students:     status.Students,
		Competitions: status.Competitions,
	}), nil
}

// NewLeaderboardServiceHandler builds an HTTP handler serving every
// LeaderboardService procedure, and returns the path to mount it on.
func NewLeaderboardServiceHandler(svc *LeaderboardService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ProcedureListStandings, connect.NewUnaryHandler(ProcedureListStandings, svc.ListStandings, opts...))
	mux.Handle(ProcedureListCompetitions, connect.NewUnaryHandler(ProcedureListCompetitions, svc.ListCompetitions, opts...))
	mux.Handle(ProcedureGetCompetitionResults, connect.NewUnaryHandler(ProcedureGetCompetitionResults, svc.GetCompetitionResults, opts...))
	mux.Handle(ProcedureGetStudentResults, connect.NewUnaryHandler(ProcedureGetStudentResults, svc.GetStudentResults, opts...))
	mux.Handle(ProcedureGetStatus, connect.NewUnaryHandler(ProcedureGetStatus, svc.GetStatus, opts...))
	mux.Handle(ProcedureAddTeamResult, connect.NewUnaryHandler(ProcedureAddTeamResult, svc.AddTeamResult, opts...))
	mux.Handle(ProcedureAddStudentResult, connect.NewUnaryHandler(ProcedureAddStudentResult, svc.AddStudentResult, opts...))
	mux.Handle(ProcedureAddCompetition, connect.NewUnaryHandler(ProcedureAddCompetition, svc.AddCompetition, opts...))
	mux.Handle(ProcedureRemoveStudent, connect.NewUnaryHandler(ProcedureRemoveStudent, svc.RemoveStudent, opts...))
	mux.Handle(ProcedureRemoveCompetition, connect.NewUnaryHandler(ProcedureRemoveCompetition, svc.RemoveCompetition, opts...))
	mux.Handle(ProcedureWipe, connect.NewUnaryHandler(ProcedureWipe, svc.Wipe, opts...))
	mux.Handle(ProcedureImportSheet, connect.NewUnaryHandler(ProcedureImportSheet, svc.ImportSheet, opts...))

	return "/" + LeaderboardServiceName + "/", mux
}
