package service

const (
	// LeaderboardServiceName is the fully-qualified name of the leaderboard service.
	LeaderboardServiceName = "leaderboard.v1.LeaderboardService"
	// AuthServiceName is the fully-qualified name of the auth service.
	AuthServiceName = "leaderboard.v1.AuthService"
)

const (
	ProcedureListStandings         = "/" + LeaderboardServiceName + "/ListStandings"
	ProcedureListCompetitions      = "/" + LeaderboardServiceName + "/ListCompetitions"
	ProcedureGetCompetitionResults = "/" + LeaderboardServiceName + "/GetCompetitionResults"
	ProcedureGetStudentResults     = "/" + LeaderboardServiceName + "/GetStudentResults"
	ProcedureGetStatus             = "/" + LeaderboardServiceName + "/GetStatus"
	ProcedureAddTeamResult         = "/" + LeaderboardServiceName + "/AddTeamResult"
	ProcedureAddStudentResult      = "/" + LeaderboardServiceName + "/AddStudentResult"
	ProcedureAddCompetition        = "/" + LeaderboardServiceName + "/AddCompetition"
	ProcedureRemoveStudent         = "/" + LeaderboardServiceName + "/RemoveStudent"
	ProcedureRemoveCompetition     = "/" + LeaderboardServiceName + "/RemoveCompetition"
	ProcedureWipe                  = "/" + LeaderboardServiceName + "/Wipe"
	ProcedureImportSheet           = "/" + LeaderboardServiceName + "/ImportSheet"

	ProcedureLogin = "/" + AuthServiceName + "/Login"
)

var adminProcedures = map[string]bool{
	ProcedureAddTeamResult:     true,
	ProcedureAddStudentResult:  true,
	ProcedureAddCompetition:    true,
	ProcedureRemoveStudent:     true,
	ProcedureRemoveCompetition: true,
	ProcedureWipe:              true,
	ProcedureImportSheet:       true,
}

// IsAdminProcedure reports whether procedure writes to the store and so
// requires an admin token.
func IsAdminProcedure(procedure string) bool {
	return adminProcedures[procedure]
}
