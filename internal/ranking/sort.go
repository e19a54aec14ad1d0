// Package ranking orders and filters an in-memory roster.
// It never touches the store; callers pass the slice they want reordered.
package ranking

import "github.com/mmynk/leaderboard/internal/models"

// SortByParticipationCount orders students in place so that students with
// more participations come first.
//
// The sort is not stable. Students with equal counts end up in whatever order
// the partition swaps leave them; callers must not rely on input order for ties.
func SortByParticipationCount(students []*models.Student) {
	partitionSort(students, (*models.Student).ParticipationCount)
}

// SortByTotalProblems orders students in place by total problems solved,
// largest first. Same tie behaviour as SortByParticipationCount.
func SortByTotalProblems(students []*models.Student) {
	partitionSort(students, (*models.Student).TotalProblems)
}

// span is an inclusive index range still waiting to be partitioned.
type span struct {
	low, high int
}

// partitionSort is a descending partition-exchange sort. Each range takes its
// middle element as pivot; two cursors walk inwards from both ends and swap
// every pair that is on the wrong side. Sub-ranges go on an explicit stack
// instead of the call stack.
func partitionSort(students []*models.Student, key func(*models.Student) int) {
	// Picking a pivot needs at least one element; one element is already sorted.
	if len(students) < 2 {
		return
	}

	stack := []span{{low: 0, high: len(students) - 1}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		left, right := r.low, r.high
		pivot := key(students[r.low+(r.high-r.low)/2])

		for left <= right {
			for key(students[left]) > pivot {
				left++
			}
			for key(students[right]) < pivot {
				right--
			}
			if left <= right {
				students[left], students[right] = students[right], students[left]
				left++
				right--
			}
		}

		// Push the right half first so the left half is handled first.
		if left < r.high {
			stack = append(stack, span{low: left, high: r.high})
		}
		if r.low < right {
			stack = append(stack, span{low: r.low, high: right})
		}
	}
}
