package scoring

import (
	"math"
	"sort"
	"strings"
	"time"
)

// DefaultSuggestionCount is the top-N size Suggest falls back to.
const DefaultSuggestionCount = 3

// Analyze runs the full ranking pipeline over the task set with the
// named strategy: graph analysis, per-task factor scores, strategy
// weighting, issue flags and explanations, then a stable descending
// sort by score (ties keep input order). Every input task produces
// exactly one ScoredTask, or the whole call fails validation before
// any scoring begins. The reference "now" is the current UTC time.
func Analyze(tasks []Task, strategy string) ([]ScoredTask, error) {
	return AnalyzeAt(tasks, strategy, time.Now().UTC())
}

// AnalyzeAt is Analyze with an explicit reference time for urgency.
func AnalyzeAt(tasks []Task, strategyName string, now time.Time) ([]ScoredTask, error) {
	if len(tasks) == 0 {
		return nil, validationf("task list is empty")
	}

	strategy, err := StrategyByName(strategyName)
	if err != nil {
		return nil, err
	}

	normalized, err := normalizeTasks(tasks)
	if err != nil {
		return nil, err
	}

	report := InspectGraph(normalized)
	blocked := blockedCounts(normalized)

	scored := make([]ScoredTask, 0, len(normalized))
	for _, t := range normalized {
		f := factorScores{
			Urgency:    urgencyScore(t.DueDate, now),
			Importance: importanceScore(t.Importance),
			Effort:     effortScore(t.EstimatedHours),
			Dependency: dependencyScore(blocked[t.ID]),
		}

		score := round3(strategy.total(f))
		label := priorityLabel(score)

		scored = append(scored, ScoredTask{
			Task:          t,
			Score:         score,
			PriorityLabel: label,
			Issues:        buildIssues(t, report),
			Explanation:   buildExplanation(label, strategy.weighted(f)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored, nil
}

// Suggest returns the first min(n, len) entries of an already ranked
// result. n defaults to DefaultSuggestionCount when not positive. A
// missing prior result is an explicit failure, never a silent default.
func Suggest(previous []ScoredTask, n int) ([]ScoredTask, error) {
	if len(previous) == 0 {
		return nil, NoPriorAnalysisError{}
	}
	if n <= 0 {
		n = DefaultSuggestionCount
	}
	if n > len(previous) {
		n = len(previous)
	}

	out := make([]ScoredTask, n)
	copy(out, previous[:n])
	return out, nil
}

// normalizeTasks validates what cannot be defaulted and defaults the
// rest onto copies, leaving the caller's slice untouched.
func normalizeTasks(tasks []Task) ([]Task, error) {
	seen := make(map[int]bool, len(tasks))
	out := make([]Task, len(tasks))

	for i, t := range tasks {
		if t.ID <= 0 {
			return nil, validationf("task at position %d: id must be a positive integer", i)
		}
		if seen[t.ID] {
			return nil, validationf("duplicate task id: %d", t.ID)
		}
		seen[t.ID] = true

		if strings.TrimSpace(t.Title) == "" {
			return nil, validationf("task %d: title is required", t.ID)
		}

		if t.EstimatedHours <= 0 {
			t.EstimatedHours = DefaultEstimatedHours
		}
		if t.Importance == 0 {
			t.Importance = DefaultImportance
		}
		if t.Importance < 1 {
			t.Importance = 1
		}
		if t.Importance > 10 {
			t.Importance = 10
		}

		out[i] = t
	}

	return out, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
