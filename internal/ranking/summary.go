package ranking

import "github.com/mmynk/leaderboard/internal/models"

// Summarize turns students into leaderboard lines, keeping their order.
func Summarize(students []*models.Student) []models.StandingRow {
	rows := make([]models.StandingRow, len(students))
	for i, s := range students {
		rows[i] = models.StandingRow{
			Name:           s.DisplayName(),
			ProblemsSolved: s.TotalProblems(),
			Competitions:   s.ParticipationCount(),
		}
	}
	return rows
}
