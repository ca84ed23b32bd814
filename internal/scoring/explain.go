package scoring

import "fmt"

// Issue strings surfaced on affected tasks. These are flags, not
// errors: scoring always proceeds.
const (
	IssueCircular       = "Circular dependency detected."
	IssueNoDueDate      = "No due date set."
	IssueEffortMismatch = "High effort, low importance."
)

// MissingDependencyIssue formats the dangling-reference flag for one
// dependency id.
func MissingDependencyIssue(depID int) string {
	return fmt.Sprintf("Missing dependency: task %d not found.", depID)
}

// buildIssues appends issue flags in a fixed, deterministic order:
// circular, missing dependencies (dependency-list order), no due date,
// effort/importance mismatch. The task is the defaulted copy.
func buildIssues(t Task, report GraphReport) []string {
	var issues []string

	if report.InCycle(t.ID) {
		issues = append(issues, IssueCircular)
	}
	for _, dep := range report.MissingFor(t.ID) {
		issues = append(issues, MissingDependencyIssue(dep))
	}
	if t.DueDate == nil {
		issues = append(issues, IssueNoDueDate)
	}
	if t.EstimatedHours >= highEffortHours && t.Importance <= lowImportanceMax {
		issues = append(issues, IssueEffortMismatch)
	}

	return issues
}

// Factor display names, in weighting order.
var factorNames = [4]string{"urgency", "importance", "low effort", "dependency impact"}

// Below this weighted contribution a factor is considered noise.
const lowSignal = 0.05

// buildExplanation names the one or two largest weighted contributions
// in descending order. It never fails: when every factor is near zero
// it degrades to a generic line.
func buildExplanation(label string, contribs [4]float64) string {
	first, second := 0, -1
	for i := 1; i < len(contribs); i++ {
		switch {
		case contribs[i] > contribs[first]:
			second = first
			first = i
		case second < 0 || contribs[i] > contribs[second]:
			second = i
		}
	}

	if contribs[first] < lowSignal {
		return "No single factor stands out for this task."
	}

	strength := "modest"
	if contribs[first] >= 0.25 {
		strength = "strong"
	}

	if second >= 0 && contribs[second] >= lowSignal {
		return fmt.Sprintf("%s priority due to %s %s and %s.",
			label, strength, factorNames[first], factorNames[second])
	}
	return fmt.Sprintf("%s priority due to %s %s.", label, strength, factorNames[first])
}
