package models

// Competition is an event students take part in.
// Lookups use Name; ID is the store's row id.
type Competition struct {
	ID   int64
	Name string
}

// Participation is one student's result in one competition.
type Participation struct {
	CompetitionID   int64
	CompetitionName string

	// ProblemsSolved is never negative.
	ProblemsSolved int

	// Placement is 1-based.
	Placement int
}
