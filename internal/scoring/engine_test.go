package scoring

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestAnalyzeValidation(t *testing.T) {
	valid := []Task{depTask(1)}

	tests := []struct {
		name     string
		tasks    []Task
		strategy string
	}{
		{"empty task set", nil, "smart_balance"},
		{"unknown strategy", valid, "NotAStrategy"},
		{"non-positive id", []Task{{ID: 0, Title: "x"}}, "smart_balance"},
		{"duplicate id", []Task{depTask(1), depTask(1)}, "smart_balance"},
		{"empty title", []Task{{ID: 1, Title: "  "}}, "smart_balance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AnalyzeAt(tt.tasks, tt.strategy, refNow)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestAnalyzeCardinality(t *testing.T) {
	tasks := []Task{
		depTask(1, 2),
		depTask(2, 1),  // cycle with 1
		depTask(3, 99), // dangling reference
		depTask(4),
	}

	for _, strategy := range StrategyNames() {
		t.Run(strategy, func(t *testing.T) {
			scored, err := AnalyzeAt(tasks, strategy, refNow)
			if err != nil {
				t.Fatalf("AnalyzeAt: %v", err)
			}
			if len(scored) != len(tasks) {
				t.Fatalf("len = %d, want %d", len(scored), len(tasks))
			}
		})
	}
}

func TestAnalyzeSortStability(t *testing.T) {
	// Identical inputs score identically; ties keep input order.
	tasks := []Task{
		depTask(3),
		depTask(1),
		depTask(2),
	}

	scored, err := AnalyzeAt(tasks, "smart_balance", refNow)
	if err != nil {
		t.Fatalf("AnalyzeAt: %v", err)
	}

	wantOrder := []int{3, 1, 2}
	for i, want := range wantOrder {
		if scored[i].ID != want {
			t.Errorf("position %d: id = %d, want %d", i, scored[i].ID, want)
		}
	}
}

func TestAnalyzeRankedOrder(t *testing.T) {
	overdue := refNow.AddDate(0, 0, -3)
	soon := refNow.AddDate(0, 0, 2)

	tasks := []Task{
		{ID: 1, Title: "Low stakes", EstimatedHours: 1, Importance: 1},
		{ID: 2, Title: "Overdue and critical", DueDate: &overdue, EstimatedHours: 1, Importance: 10},
		{ID: 3, Title: "Due soon", DueDate: &soon, EstimatedHours: 1, Importance: 5},
	}

	scored, err := AnalyzeAt(tasks, "deadline_driven", refNow)
	if err != nil {
		t.Fatalf("AnalyzeAt: %v", err)
	}

	if scored[0].ID != 2 {
		t.Errorf("top task id = %d, want 2", scored[0].ID)
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[i-1].Score {
			t.Errorf("scores not descending at %d: %v > %v", i, scored[i].Score, scored[i-1].Score)
		}
	}
}

func TestAnalyzeDefaultsWithoutMutatingInput(t *testing.T) {
	tasks := []Task{
		{ID: 1, Title: "Bare", EstimatedHours: 0, Importance: 0},
		{ID: 2, Title: "Out of range", EstimatedHours: -2, Importance: 99},
	}

	scored, err := AnalyzeAt(tasks, "smart_balance", refNow)
	if err != nil {
		t.Fatalf("AnalyzeAt: %v", err)
	}

	byID := map[int]ScoredTask{}
	for _, s := range scored {
		byID[s.ID] = s
	}

	if got := byID[1]; got.EstimatedHours != DefaultEstimatedHours || got.Importance != DefaultImportance {
		t.Errorf("task 1 defaults = (%v, %d), want (%v, %d)",
			got.EstimatedHours, got.Importance, DefaultEstimatedHours, DefaultImportance)
	}
	if got := byID[2]; got.EstimatedHours != DefaultEstimatedHours || got.Importance != 10 {
		t.Errorf("task 2 normalized = (%v, %d), want (%v, 10)", got.EstimatedHours, got.Importance, DefaultEstimatedHours)
	}

	// Caller's slice stays untouched.
	if tasks[0].EstimatedHours != 0 || tasks[0].Importance != 0 {
		t.Errorf("input task mutated: %+v", tasks[0])
	}
}

func TestAnalyzePriorityLabels(t *testing.T) {
	overdue := refNow.AddDate(0, 0, -1)

	tests := []struct {
		name string
		task Task
		want string
	}{
		{"high", Task{ID: 1, Title: "h", DueDate: &overdue, EstimatedHours: 0.5, Importance: 10}, LabelHigh},
		{"medium", Task{ID: 1, Title: "m", EstimatedHours: 1, Importance: 10}, LabelMedium},
		{"low", Task{ID: 1, Title: "l", EstimatedHours: 1, Importance: 5}, LabelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored, err := AnalyzeAt([]Task{tt.task}, "smart_balance", refNow)
			if err != nil {
				t.Fatalf("AnalyzeAt: %v", err)
			}
			if scored[0].PriorityLabel != tt.want {
				t.Errorf("label = %q (score %v), want %q", scored[0].PriorityLabel, scored[0].Score, tt.want)
			}
		})
	}
}

func TestAnalyzeIssueOrder(t *testing.T) {
	tasks := []Task{
		{ID: 1, Title: "Troubled", EstimatedHours: 10, Importance: 2, Dependencies: []int{2, 99}},
		depTask(2, 1),
	}

	scored, err := AnalyzeAt(tasks, "smart_balance", refNow)
	if err != nil {
		t.Fatalf("AnalyzeAt: %v", err)
	}

	var troubled ScoredTask
	for _, s := range scored {
		if s.ID == 1 {
			troubled = s
		}
	}

	want := []string{
		IssueCircular,
		"Missing dependency: task 99 not found.",
		IssueNoDueDate,
		IssueEffortMismatch,
	}
	if len(troubled.Issues) != len(want) {
		t.Fatalf("issues = %v, want %v", troubled.Issues, want)
	}
	for i := range want {
		if troubled.Issues[i] != want[i] {
			t.Errorf("issue %d = %q, want %q", i, troubled.Issues[i], want[i])
		}
	}
}

func TestAnalyzeDanglingNotCircular(t *testing.T) {
	tasks := []Task{
		depTask(1, 99),
		depTask(2),
	}

	scored, err := AnalyzeAt(tasks, "smart_balance", refNow)
	if err != nil {
		t.Fatalf("AnalyzeAt: %v", err)
	}

	for _, s := range scored {
		if s.ID != 1 {
			continue
		}
		hasMissing := false
		for _, issue := range s.Issues {
			if issue == IssueCircular {
				t.Error("dangling reference flagged circular")
			}
			if issue == "Missing dependency: task 99 not found." {
				hasMissing = true
			}
		}
		if !hasMissing {
			t.Errorf("missing-dependency issue absent: %v", s.Issues)
		}
	}
}

func TestAnalyzeExplanations(t *testing.T) {
	overdue := refNow.AddDate(0, 0, -2)

	t.Run("dominant factors named", func(t *testing.T) {
		task := Task{ID: 1, Title: "Critical", DueDate: &overdue, EstimatedHours: 1, Importance: 10}
		scored, err := AnalyzeAt([]Task{task}, "deadline_driven", refNow)
		if err != nil {
			t.Fatalf("AnalyzeAt: %v", err)
		}
		want := "High priority due to strong urgency and importance."
		if scored[0].Explanation != want {
			t.Errorf("explanation = %q, want %q", scored[0].Explanation, want)
		}
	})

	t.Run("degrades when no factor stands out", func(t *testing.T) {
		task := Task{ID: 1, Title: "Sleeper", EstimatedHours: 20, Importance: 1}
		scored, err := AnalyzeAt([]Task{task}, "smart_balance", refNow)
		if err != nil {
			t.Fatalf("AnalyzeAt: %v", err)
		}
		want := "No single factor stands out for this task."
		if scored[0].Explanation != want {
			t.Errorf("explanation = %q, want %q", scored[0].Explanation, want)
		}
	})
}

func TestAnalyzeScoreRounding(t *testing.T) {
	tasks := []Task{
		{ID: 1, Title: "a", EstimatedHours: 3, Importance: 7},
		{ID: 2, Title: "b", EstimatedHours: 1.7, Importance: 3},
	}

	scored, err := AnalyzeAt(tasks, "smart_balance", refNow)
	if err != nil {
		t.Fatalf("AnalyzeAt: %v", err)
	}

	for _, s := range scored {
		scaled := s.Score * 1000
		if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			t.Errorf("score %v not rounded to 3 decimals", s.Score)
		}
	}
}

func TestAnalyzeDependencyBonusUnbounded(t *testing.T) {
	// One task blocking eleven others can push the weighted total past
	// the nominal [0,1] band; it must not be clamped.
	tasks := []Task{depTask(1)}
	for i := 2; i <= 12; i++ {
		tasks = append(tasks, depTask(i, 1))
	}
	due := refNow.AddDate(0, 0, -1)
	tasks[0].DueDate = &due
	tasks[0].Importance = 10

	scored, err := AnalyzeAt(tasks, "high_impact", refNow)
	if err != nil {
		t.Fatalf("AnalyzeAt: %v", err)
	}

	if scored[0].ID != 1 {
		t.Fatalf("top task id = %d, want 1", scored[0].ID)
	}
	// 0.1*1 + 0.5*1 + 0.4*1.1 = 1.04
	if scored[0].Score <= 1 {
		t.Errorf("score = %v, want > 1 with a large dependency bonus", scored[0].Score)
	}
}

func TestSuggest(t *testing.T) {
	tasks := make([]Task, 0, 5)
	for i := 1; i <= 5; i++ {
		tasks = append(tasks, Task{ID: i, Title: "t", EstimatedHours: 1, Importance: 2 * i})
	}

	ranked, err := AnalyzeAt(tasks, "smart_balance", refNow)
	if err != nil {
		t.Fatalf("AnalyzeAt: %v", err)
	}

	t.Run("without prior analysis", func(t *testing.T) {
		_, err := Suggest(nil, 3)
		var nerr NoPriorAnalysisError
		if !errors.As(err, &nerr) {
			t.Fatalf("err = %v, want NoPriorAnalysisError", err)
		}
	})

	t.Run("first three of ranked order", func(t *testing.T) {
		got, err := Suggest(ranked, 3)
		if err != nil {
			t.Fatalf("Suggest: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		for i := range got {
			if got[i].ID != ranked[i].ID {
				t.Errorf("position %d: id = %d, want %d", i, got[i].ID, ranked[i].ID)
			}
		}
	})

	t.Run("n defaults to three", func(t *testing.T) {
		got, err := Suggest(ranked, 0)
		if err != nil {
			t.Fatalf("Suggest: %v", err)
		}
		if len(got) != DefaultSuggestionCount {
			t.Errorf("len = %d, want %d", len(got), DefaultSuggestionCount)
		}
	})

	t.Run("n larger than result", func(t *testing.T) {
		got, err := Suggest(ranked, 50)
		if err != nil {
			t.Fatalf("Suggest: %v", err)
		}
		if len(got) != len(ranked) {
			t.Errorf("len = %d, want %d", len(got), len(ranked))
		}
	})
}

func TestStrategyByNameUnknown(t *testing.T) {
	_, err := StrategyByName("does_not_exist")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestAnalyzeUsesWallClock(t *testing.T) {
	// Analyze is AnalyzeAt with time.Now; an overdue task must be
	// urgent regardless of when the test runs.
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: 1, Title: "Ancient", DueDate: &past, EstimatedHours: 1, Importance: 5},
		{ID: 2, Title: "No deadline", EstimatedHours: 1, Importance: 5},
	}

	scored, err := Analyze(tasks, "deadline_driven")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if scored[0].ID != 1 {
		t.Errorf("top task id = %d, want the overdue task", scored[0].ID)
	}
}
