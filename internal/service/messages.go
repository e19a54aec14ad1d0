package service

import "time"

// Standing is one row of the leaderboard.
type Standing struct {
	Rank           int    `json:"rank"`
	Name           string `json:"name"`
	ProblemsSolved int    `json:"problemsSolved"`
	Competitions   int    `json:"competitions"`
}

type Competition struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CompetitionResult struct {
	StudentName    string `json:"studentName"`
	ProblemsSolved int    `json:"problemsSolved"`
	Placement      int    `json:"placement"`
}

type StudentResult struct {
	CompetitionName string `json:"competitionName"`
	ProblemsSolved  int    `json:"problemsSolved"`
	Placement       int    `json:"placement"`
}

type Member struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListStandingsRequest selects the order ("participation", "problems" or
// "none") and an optional level filter.
type ListStandingsRequest struct {
	Sort  string `json:"sort"`
	Level string `json:"level"`
}

type ListStandingsResponse struct {
	Standings []Standing `json:"standings"`
}

type ListCompetitionsRequest struct{}

type ListCompetitionsResponse struct {
	Competitions []Competition `json:"competitions"`
}

type GetCompetitionResultsRequest struct {
	Name string `json:"name"`
}

type GetCompetitionResultsResponse struct {
	Competition string              `json:"competition"`
	Results     []CompetitionResult `json:"results"`
}

type GetStudentResultsRequest struct {
	Name string `json:"name"`
}

type GetStudentResultsResponse struct {
	Name    string          `json:"name"`
	Results []StudentResult `json:"results"`
}

type GetStatusRequest struct{}

type GetStatusResponse struct {
	Empty        bool `json:"empty"`
	Students     int  `json:"students"`
	Competitions int  `json:"competitions"`
}

// AddTeamResultRequest carries up to three members; the first is required.
type AddTeamResultRequest struct {
	Level          string   `json:"level"`
	Members        []Member `json:"members"`
	ProblemsSolved int      `json:"problemsSolved"`
	Placement      int      `json:"placement"`
	Competition    string   `json:"competition"`
}

type AddStudentResultRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Level          string `json:"level"`
	Competition    string `json:"competition"`
	ProblemsSolved int    `json:"problemsSolved"`
	Placement      int    `json:"placement"`
}

type AddCompetitionRequest struct {
	Name string `json:"name"`
}

type RemoveStudentRequest struct {
	Name string `json:"name"`
}

type RemoveCompetitionRequest struct {
	Name string `json:"name"`
}

type WipeRequest struct{}

// MutationResponse reports the roster size after a write.
type MutationResponse struct {
	Students     int `json:"students"`
	Competitions int `json:"competitions"`
}

type ImportSheetRequest struct {
	Competition string `json:"competition"`
	Content     string `json:"content"`
}

type ImportSheetResponse struct {
	BatchID      string `json:"batchId"`
	Teams        int    `json:"teams"`
	Students     int    `json:"students"`
	Competitions int    `json:"competitions"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
