package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// Client calls LeaderboardService and AuthService over Connect with the JSON
// codec. Set Token after Login to call the admin procedures.
type Client struct {
	Token string

	listStandings         *connect.Client[ListStandingsRequest, ListStandingsResponse]
	listCompetitions      *connect.Client[ListCompetitionsRequest, ListCompetitionsResponse]
	getCompetitionResults *connect.Client[GetCompetitionResultsRequest, GetCompetitionResultsResponse]
	getStudentResults     *connect.Client[GetStudentResultsRequest, GetStudentResultsResponse]
	getStatus             *connect.Client[GetStatusRequest, GetStatusResponse]
	addTeamResult         *connect.Client[AddTeamResultRequest, MutationResponse]
	addStudentResult      *connect.Client[AddStudentResultRequest, MutationResponse]
	addCompetition        *connect.Client[AddCompetitionRequest, MutationResponse]
	removeStudent         *connect.Client[RemoveStudentRequest, MutationResponse]
	removeCompetition     *connect.Client[RemoveCompetitionRequest, MutationResponse]
	wipe                  *connect.Client[WipeRequest, MutationResponse]
	importSheet           *connect.Client[ImportSheetRequest, ImportSheetResponse]
	login                 *connect.Client[LoginRequest, LoginResponse]
}

// NewClient creates a client for the server at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)

	return &Client{
		listStandings:         connect.NewClient[ListStandingsRequest, ListStandingsResponse](httpClient, baseURL+ProcedureListStandings, opts...),
		listCompetitions:      connect.NewClient[ListCompetitionsRequest, ListCompetitionsResponse](httpClient, baseURL+ProcedureListCompetitions, opts...),
		getCompetitionResults: connect.NewClient[GetCompetitionResultsRequest, GetCompetitionResultsResponse](httpClient, baseURL+ProcedureGetCompetitionResults, opts...),
		getStudentResults:     connect.NewClient[GetStudentResultsRequest, GetStudentResultsResponse](httpClient, baseURL+ProcedureGetStudentResults, opts...),
		getStatus:             connect.NewClient[GetStatusRequest, GetStatusResponse](httpClient, baseURL+ProcedureGetStatus, opts...),
		addTeamResult:         connect.NewClient[AddTeamResultRequest, MutationResponse](httpClient, baseURL+ProcedureAddTeamResult, opts...),
		addStudentResult:      connect.NewClient[AddStudentResultRequest, MutationResponse](httpClient, baseURL+ProcedureAddStudentResult, opts...),
		addCompetition:        connect.NewClient[AddCompetitionRequest, MutationResponse](httpClient, baseURL+ProcedureAddCompetition, opts...),
		removeStudent:         connect.NewClient[RemoveStudentRequest, MutationResponse](httpClient, baseURL+ProcedureRemoveStudent, opts...),
		removeCompetition:     connect.NewClient[RemoveCompetitionRequest, MutationResponse](httpClient, baseURL+ProcedureRemoveCompetition, opts...),
		wipe:                  connect.NewClient[WipeRequest, MutationResponse](httpClient, baseURL+ProcedureWipe, opts...),
		importSheet:           connect.NewClient[ImportSheetRequest, ImportSheetResponse](httpClient, baseURL+ProcedureImportSheet, opts...),
		login:                 connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+ProcedureLogin, opts...),
	}
}

// call sends msg with the bearer token when one is set and unwraps the reply.
func call[Req, Res any](ctx context.Context, c *Client, client *connect.Client[Req, Res], msg *Req) (*Res, error) {
	req := connect.NewRequest(msg)
	if c.Token != "" {
		req.Header().Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := client.CallUnary(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *Client) ListStandings(ctx context.Context, req *ListStandingsRequest) (*ListStandingsResponse, error) {
	return call(ctx, c, c.listStandings, req)
}

func (c *Client) ListCompetitions(ctx context.Context) (*ListCompetitionsResponse, error) {
	return call(ctx, c, c.listCompetitions, &ListCompetitionsRequest{})
}

func (c *Client) GetCompetitionResults(ctx context.Context, name string) (*GetCompetitionResultsResponse, error) {
	return call(ctx, c, c.getCompetitionResults, &GetCompetitionResultsRequest{Name: name})
}

func (c *Client) GetStudentResults(ctx context.Context, name string) (*GetStudentResultsResponse, error) {
	return call(ctx, c, c.getStudentResults, &GetStudentResultsRequest{Name: name})
}

func (c *Client) GetStatus(ctx context.Context) (*GetStatusResponse, error) {
	return call(ctx, c, c.getStatus, &GetStatusRequest{})
}

func (c *Client) AddTeamResult(ctx context.Context, req *AddTeamResultRequest) (*MutationResponse, error) {
	return call(ctx, c, c.addTeamResult, req)
}

func (c *Client) AddStudentResult(ctx context.Context, req *AddStudentResultRequest) (*MutationResponse, error) {
	return call(ctx, c, c.addStudentResult, req)
}

func (c *Client) AddCompetition(ctx context.Context, name string) (*MutationResponse, error) {
	return call(ctx, c, c.addCompetition, &AddCompetitionRequest{Name: name})
}

func (c *Client) RemoveStudent(ctx context.Context, name string) (*MutationResponse, error) {
	return call(ctx, c, c.removeStudent, &RemoveStudentRequest{Name: name})
}

func (c *Client) RemoveCompetition(ctx context.Context, name string) (*MutationResponse, error) {
	return call(ctx, c, c.removeCompetition, &RemoveCompetitionRequest{Name: name})
}

func (c *Client) Wipe(ctx context.Context) (*MutationResponse, error) {
	return call(ctx, c, c.wipe, &WipeRequest{})
}

func (c *Client) ImportSheet(ctx context.Context, competition, content string) (*ImportSheetResponse, error) {
	return call(ctx, c, c.importSheet, &ImportSheetRequest{Competition: competition, Content: content})
}

// Login exchanges the admin password for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, password string) (*LoginResponse, error) {
	resp, err := call(ctx, c, c.login, &LoginRequest{Password: password})
	if err != nil {
		return nil, err
	}
	c.Token = resp.Token
	return resp, nil
}
