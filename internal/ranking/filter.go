package ranking

import "github.com/mmynk/leaderboard/internal/models"

// All returns the roster unfiltered, in its current order.
func All(students []*models.Student) []*models.Student {
	out := make([]*models.Student, len(students))
	copy(out, students)
	return out
}

// FilterByLevel keeps the students at the given level, preserving order.
// A level that is neither Novice nor Advanced returns the whole roster.
func FilterByLevel(students []*models.Student, level models.Level) []*models.Student {
	if !level.Valid() {
		return All(students)
	}

	var out []*models.Student
	for _, s := range students {
		if s.Level == level {
			out = append(out, s)
		}
	}
	return out
}
