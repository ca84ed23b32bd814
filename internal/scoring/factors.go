package scoring

import "time"

// factorScores holds the four sub-scores of one task before strategy
// weights are applied. All but dependency are bounded to [0,1];
// dependency grows with the blocked count and is intentionally not
// clamped.
type factorScores struct {
	Urgency    float64
	Importance float64
	Effort     float64
	Dependency float64
}

const urgencyWindowDays = 7.0

// urgencyScore maps days-until-due onto [0,1]: 0 at seven days out
// (or with no due date at all), 1 for anything already overdue.
func urgencyScore(due *time.Time, now time.Time) float64 {
	if due == nil {
		return 0
	}
	days := due.Sub(now).Hours() / 24
	return clamp(1-days/urgencyWindowDays, 0, 1)
}

func importanceScore(importance int) float64 {
	return float64(importance) / 10
}

// effortScore prefers small tasks: 1/(1+hours), strictly decreasing,
// always in (0,1].
func effortScore(estimatedHours float64) float64 {
	return 1 / (1 + estimatedHours)
}

// dependencyScore rewards tasks that unblock others. 0.1 per blocked
// task, unbounded: a task blocking 10+ others legitimately scores
// above 1.0 on this factor.
func dependencyScore(blockedCount int) float64 {
	return 0.1 * float64(blockedCount)
}

// blockedCounts returns, per task id, how many other tasks in the set
// list that id among their dependencies. Dangling references count for
// nobody.
func blockedCounts(tasks []Task) map[int]int {
	counts := make(map[int]int, len(tasks))
	for _, t := range tasks {
		counts[t.ID] = 0
	}
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if _, ok := counts[dep]; ok {
				counts[dep]++
			}
		}
	}
	return counts
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
