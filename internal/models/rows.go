package models

// CompetitionResultRow is one line of a competition's result table.
type CompetitionResultRow struct {
	StudentName    string
	ProblemsSolved int
	Placement      int
}

// StudentResultRow is one line of a student's history.
type StudentResultRow struct {
	CompetitionName string
	ProblemsSolved  int
	Placement       int
}

// ResultRow is one participation in the competition-major "all data" view.
type ResultRow struct {
	CompetitionName string
	StudentName     string
	ProblemsSolved  int
	Placement       int
}

// StandingRow is one student's line in the leaderboard summary.
type StandingRow struct {
	Name           string
	ProblemsSolved int
	Competitions   int
}

// StoredStudent is a students row as read from the store.
type StoredStudent struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Level     Level
}

// StoredResult is a results row as read from the store.
type StoredResult struct {
	StudentID      int64
	CompetitionID  int64
	ProblemsSolved int
	Placement      int
}
