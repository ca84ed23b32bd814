package scoring

// Strategy is a named weight vector over the four factor scores. The
// weighted total is a plain dot product; it is not re-normalized, so
// with a large dependency bonus it can exceed 1.0.
type Strategy struct {
	Name string

	Urgency    float64
	Importance float64
	Effort     float64
	Dependency float64
}

// DefaultStrategy is used by hosts when a request names none.
const DefaultStrategy = "smart_balance"

// strategies is a configuration table, not derived logic. Keys are the
// API names; Name is the display form.
var strategies = map[string]Strategy{
	"smart_balance":   {Name: "Smart Balance", Urgency: 0.35, Importance: 0.35, Effort: 0.15, Dependency: 0.15},
	"fastest_wins":    {Name: "Fastest Wins", Urgency: 0.2, Importance: 0.2, Effort: 0.5, Dependency: 0.1},
	"high_impact":     {Name: "High Impact", Urgency: 0.1, Importance: 0.5, Effort: 0.0, Dependency: 0.4},
	"deadline_driven": {Name: "Deadline Driven", Urgency: 0.6, Importance: 0.2, Effort: 0.1, Dependency: 0.1},
}

// StrategyByName resolves an API strategy name. Unknown names are a
// validation failure, never a silent fallback.
func StrategyByName(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return Strategy{}, validationf("unknown strategy: %q", name)
	}
	return s, nil
}

// StrategyNames lists the recognized API names.
func StrategyNames() []string {
	return []string{"smart_balance", "fastest_wins", "high_impact", "deadline_driven"}
}

func (s Strategy) total(f factorScores) float64 {
	return s.Urgency*f.Urgency +
		s.Importance*f.Importance +
		s.Effort*f.Effort +
		s.Dependency*f.Dependency
}

// weighted returns the per-factor contributions after weighting, in
// fixed order: urgency, importance, effort, dependency.
func (s Strategy) weighted(f factorScores) [4]float64 {
	return [4]float64{
		s.Urgency * f.Urgency,
		s.Importance * f.Importance,
		s.Effort * f.Effort,
		s.Dependency * f.Dependency,
	}
}
