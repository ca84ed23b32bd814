package tasks

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lib/pq"

	"taskrank-backend/internal/analytics"
)

// -------------------------------
// STORED TASK HANDLERS
// -------------------------------

func queryStoredTasks(dbx *sql.DB, r *http.Request) ([]StoredTask, error) {
	rows, err := dbx.QueryContext(
		r.Context(),
		`SELECT id, title, due_date, estimated_hours, importance, dependencies, created_at
         FROM tasks
         ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StoredTask
	for rows.Next() {
		var (
			t    StoredTask
			due  sql.NullTime
			deps pq.Int64Array
		)
		if err := rows.Scan(&t.ID, &t.Title, &due, &t.EstimatedHours, &t.Importance, &deps, &t.CreatedAt); err != nil {
			return nil, err
		}
		if due.Valid {
			d := due.Time
			t.DueDate = &d
		}
		t.Dependencies = make([]int, 0, len(deps))
		for _, d := range deps {
			t.Dependencies = append(t.Dependencies, int(d))
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func GetTasksHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := queryStoredTasks(dbx, r)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if result == nil {
			result = []StoredTask{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

func CreateTaskHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title          string  `json:"title"`
			DueDate        *string `json:"due_date"`
			EstimatedHours float64 `json:"estimated_hours"`
			Importance     int     `json:"importance"`
			Dependencies   []int   `json:"dependencies"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		title := strings.TrimSpace(body.Title)
		if title == "" {
			http.Error(w, "title is required", http.StatusBadRequest)
			return
		}

		var due sql.NullTime
		if body.DueDate != nil && strings.TrimSpace(*body.DueDate) != "" {
			parsed, err := time.Parse(dueDateLayout, strings.TrimSpace(*body.DueDate))
			if err != nil {
				http.Error(w, "invalid due_date (want YYYY-MM-DD)", http.StatusBadRequest)
				return
			}
			due = sql.NullTime{Time: parsed, Valid: true}
		}

		if body.EstimatedHours <= 0 {
			body.EstimatedHours = 1
		}
		if body.Importance < 1 || body.Importance > 10 {
			body.Importance = 5
		}
		if body.Dependencies == nil {
			body.Dependencies = []int{}
		}

		deps := make(pq.Int64Array, 0, len(body.Dependencies))
		for _, d := range body.Dependencies {
			deps = append(deps, int64(d))
		}

		row := dbx.QueryRowContext(
			r.Context(),
			`INSERT INTO tasks (title, due_date, estimated_hours, importance, dependencies)
             VALUES ($1, $2, $3, $4, $5)
             RETURNING id, created_at`,
			title, due, body.EstimatedHours, body.Importance, deps,
		)

		t := StoredTask{
			Title:          title,
			EstimatedHours: body.EstimatedHours,
			Importance:     body.Importance,
			Dependencies:   body.Dependencies,
		}
		if due.Valid {
			d := due.Time
			t.DueDate = &d
		}

		if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
			http.Error(w, "db insert error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		// analytics: task_created
		{
			env := analytics.FromRequest(r)
			props := map[string]any{
				"task_id":      t.ID,
				"has_deadline": t.DueDate != nil,
				"dep_count":    len(t.Dependencies),
			}
			_ = analytics.Log(r.Context(), dbx, env, "task_created", props, analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(t)
	}
}
