package tasks

import (
	"fmt"
	"strings"
	"time"

	"taskrank-backend/internal/scoring"
)

// StoredTask is a persisted task row.
type StoredTask struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours float64    `json:"estimated_hours"`
	Importance     int        `json:"importance"`
	Dependencies   []int      `json:"dependencies"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TaskInput is the transport shape of one task in analyze/graph
// requests. Dates arrive as strings; the handlers convert to engine
// tasks before the core ever sees them.
type TaskInput struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	DueDate        *string `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int   `json:"dependencies"`
}

const dueDateLayout = "2006-01-02"

func (in TaskInput) toEngineTask() (scoring.Task, error) {
	t := scoring.Task{
		ID:             in.ID,
		Title:          in.Title,
		EstimatedHours: in.EstimatedHours,
		Importance:     in.Importance,
		Dependencies:   in.Dependencies,
	}

	if in.DueDate != nil && strings.TrimSpace(*in.DueDate) != "" {
		raw := strings.TrimSpace(*in.DueDate)
		due, err := time.Parse(dueDateLayout, raw)
		if err != nil {
			// clients replaying stored tasks send full timestamps
			due, err = time.Parse(time.RFC3339, raw)
		}
		if err != nil {
			return scoring.Task{}, fmt.Errorf("task %d: invalid due_date %q (want YYYY-MM-DD)", in.ID, raw)
		}
		t.DueDate = &due
	}

	return t, nil
}

func toEngineTasks(inputs []TaskInput) ([]scoring.Task, error) {
	out := make([]scoring.Task, 0, len(inputs))
	for _, in := range inputs {
		t, err := in.toEngineTask()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
