package scoring

import "fmt"

// ValidationError indicates the analysis request itself is unusable:
// empty task set, unknown strategy, or a task field that cannot be
// defaulted. Nothing is scored when it is returned.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid analysis request: %s", e.Reason)
}

func validationf(format string, args ...any) error {
	return ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NoPriorAnalysisError indicates Suggest was called without a ranked
// result to slice from.
type NoPriorAnalysisError struct{}

func (e NoPriorAnalysisError) Error() string {
	return "no prior analysis: run analyze before requesting suggestions"
}
