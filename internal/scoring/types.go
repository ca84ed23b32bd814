package scoring

import "time"

// Task is one raw work item handed in by the host. The host is
// responsible for decoding transport payloads into this shape; the
// engine applies field defaults itself and never mutates the input.
type Task struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours float64    `json:"estimated_hours"`
	Importance     int        `json:"importance"`
	Dependencies   []int      `json:"dependencies"`
}

// ScoredTask is the engine output: the input task plus score, label,
// issue flags and a short human explanation.
type ScoredTask struct {
	Task

	Score         float64  `json:"score"`
	PriorityLabel string   `json:"priority_label"`
	Issues        []string `json:"issues"`
	Explanation   string   `json:"explanation"`
}

// Priority labels assigned by score thresholds.
const (
	LabelHigh   = "High"
	LabelMedium = "Medium"
	LabelLow    = "Low"
)

// Label thresholds (score >= threshold).
const (
	HighThreshold   = 0.66
	MediumThreshold = 0.33
)

// Defaults applied to absent/invalid task fields.
const (
	DefaultEstimatedHours = 1.0
	DefaultImportance     = 5
)

// Thresholds for the "High effort, low importance." issue flag.
const (
	highEffortHours  = 8.0
	lowImportanceMax = 3
)

func priorityLabel(score float64) string {
	switch {
	case score >= HighThreshold:
		return LabelHigh
	case score >= MediumThreshold:
		return LabelMedium
	default:
		return LabelLow
	}
}
