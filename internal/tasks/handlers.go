package tasks

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"slices"
	"strconv"

	"taskrank-backend/internal/analytics"
	"taskrank-backend/internal/scoring"
)

// AnalyzeTasksHandler runs the prioritization engine over the tasks in
// the request body. With an empty tasks list it falls back to the
// stored task set. The ranked result is kept in the memo for
// /tasks/suggest.
func AnalyzeTasksHandler(dbx *sql.DB, memo *Memo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Strategy string      `json:"strategy"`
			Tasks    []TaskInput `json:"tasks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if body.Strategy == "" {
			body.Strategy = scoring.DefaultStrategy
		}

		var (
			input []scoring.Task
			err   error
		)
		if len(body.Tasks) == 0 {
			input, err = loadStoredEngineTasks(dbx, r)
			if err != nil {
				http.Error(w, "no tasks in request and no stored tasks available", http.StatusBadRequest)
				return
			}
		} else {
			input, err = toEngineTasks(body.Tasks)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		ranked, err := scoring.Analyze(input, body.Strategy)
		if err != nil {
			var verr scoring.ValidationError
			if errors.As(err, &verr) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "analysis error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		memo.Store(body.Strategy, ranked)

		// analytics: tasks_analyzed
		{
			env := analytics.FromRequest(r)

			cycles := 0
			for _, t := range ranked {
				if slices.Contains(t.Issues, scoring.IssueCircular) {
					cycles++
				}
			}

			props := map[string]any{
				"strategy":    body.Strategy,
				"task_count":  len(ranked),
				"cycle_count": cycles,
				"top_label":   ranked[0].PriorityLabel,
			}
			_ = analytics.Log(r.Context(), dbx, env, "tasks_analyzed", props, analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"strategy": body.Strategy,
			"tasks":    ranked,
		})
	}
}

// SuggestTasksHandler serves the top-N of the last analyzed result.
// ?n= overrides the default of 3. Fails explicitly when nothing has
// been analyzed yet.
func SuggestTasksHandler(dbx *sql.DB, memo *Memo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := 0
		if raw := r.URL.Query().Get("n"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "n must be an integer", http.StatusBadRequest)
				return
			}
			n = parsed
		}

		strategy, ranked := memo.Load()

		suggested, err := scoring.Suggest(ranked, n)
		if err != nil {
			var nerr scoring.NoPriorAnalysisError
			if errors.As(err, &nerr) {
				http.Error(w, "no analyzed tasks found, call /tasks/analyze first", http.StatusBadRequest)
				return
			}
			http.Error(w, "suggest error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		// analytics: suggestions_served
		{
			env := analytics.FromRequest(r)
			props := map[string]any{
				"strategy":  strategy,
				"requested": n,
				"served":    len(suggested),
			}
			_ = analytics.Log(r.Context(), dbx, env, "suggestions_served", props, analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"strategy":  strategy,
			"suggested": suggested,
		})
	}
}

type graphNode struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Circular bool   `json:"circular"`
}

type graphEdge struct {
	From int `json:"from"` // dependency
	To   int `json:"to"`   // dependent
}

// GraphHandler returns the dependency graph of the posted tasks as
// structured data for rendering clients: nodes carry the circular
// flag, edges run dependency -> dependent, dangling references are
// listed separately.
func GraphHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Tasks []TaskInput `json:"tasks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if len(body.Tasks) == 0 {
			http.Error(w, "tasks required", http.StatusBadRequest)
			return
		}

		input, err := toEngineTasks(body.Tasks)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report := scoring.InspectGraph(input)

		exists := make(map[int]bool, len(input))
		for _, t := range input {
			exists[t.ID] = true
		}

		nodes := make([]graphNode, 0, len(input))
		edges := []graphEdge{}
		for _, t := range input {
			nodes = append(nodes, graphNode{
				ID:       t.ID,
				Title:    t.Title,
				Circular: report.InCycle(t.ID),
			})
			for _, dep := range t.Dependencies {
				if exists[dep] {
					edges = append(edges, graphEdge{From: dep, To: t.ID})
				}
			}
		}

		missing := report.Missing
		if missing == nil {
			missing = []scoring.MissingDep{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"nodes":   nodes,
			"edges":   edges,
			"missing": missing,
		})
	}
}

// loadStoredEngineTasks pulls the persisted task list for analysis.
func loadStoredEngineTasks(dbx *sql.DB, r *http.Request) ([]scoring.Task, error) {
	if dbx == nil {
		return nil, errors.New("no database configured")
	}

	stored, err := queryStoredTasks(dbx, r)
	if err != nil {
		log.Printf("[WARN] loading stored tasks for analyze failed: %v", err)
		return nil, err
	}

	out := make([]scoring.Task, 0, len(stored))
	for _, s := range stored {
		out = append(out, scoring.Task{
			ID:             s.ID,
			Title:          s.Title,
			DueDate:        s.DueDate,
			EstimatedHours: s.EstimatedHours,
			Importance:     s.Importance,
			Dependencies:   s.Dependencies,
		})
	}
	return out, nil
}
