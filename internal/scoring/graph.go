package scoring

// MissingDep records a dependency reference to an id that is not part
// of the analyzed task set.
type MissingDep struct {
	TaskID int `json:"task_id"`
	DepID  int `json:"dependency_id"`
}

// GraphReport is the output of the dependency graph pass: which tasks
// sit on at least one cycle, and which references dangle.
type GraphReport struct {
	Circular map[int]bool
	Missing  []MissingDep
}

// InCycle reports whether the task participates in a cycle.
func (r GraphReport) InCycle(id int) bool {
	return r.Circular[id]
}

// MissingFor returns the dangling dependency ids of one task, in
// dependency-list order.
func (r GraphReport) MissingFor(id int) []int {
	var out []int
	for _, m := range r.Missing {
		if m.TaskID == id {
			out = append(out, m.DepID)
		}
	}
	return out
}

const (
	colorWhite = iota // unvisited
	colorGray         // in progress (on the traversal stack)
	colorBlack        // done
)

// InspectGraph builds the dependency graph of the task set and detects
// cycles with a three-color depth-first traversal. The traversal uses
// an explicit frame stack, so deep chains cannot exhaust the call
// stack. Dangling references are reported separately and never count
// as cycle edges. Runs in O(V+E) and does not mutate the input.
func InspectGraph(tasks []Task) GraphReport {
	exists := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		exists[t.ID] = true
	}

	report := GraphReport{Circular: make(map[int]bool)}

	// Edges follow the dependency lists; only resolvable ids become
	// edges, everything else is a Missing entry.
	adj := make(map[int][]int, len(tasks))
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if !exists[dep] {
				report.Missing = append(report.Missing, MissingDep{TaskID: t.ID, DepID: dep})
				continue
			}
			adj[t.ID] = append(adj[t.ID], dep)
		}
	}

	type frame struct {
		id   int
		next int // index of the next edge to follow
	}

	color := make(map[int]int, len(tasks))

	for _, start := range tasks {
		if color[start.ID] != colorWhite {
			continue
		}

		stack := []frame{{id: start.ID}}
		color[start.ID] = colorGray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			edges := adj[top.id]

			if top.next >= len(edges) {
				color[top.id] = colorBlack
				stack = stack[:len(stack)-1]
				continue
			}

			dep := edges[top.next]
			top.next++

			switch color[dep] {
			case colorWhite:
				color[dep] = colorGray
				stack = append(stack, frame{id: dep})
			case colorGray:
				// Back-edge: everything currently in progress is part
				// of (or feeds) the cycle. A direct self-loop lands
				// here too, since the frame itself is gray.
				for _, f := range stack {
					report.Circular[f.id] = true
				}
			}
		}
	}

	return report
}
