package tasks

import (
	"sync"

	"taskrank-backend/internal/scoring"
)

// Memo keeps the most recent ranked result so /tasks/suggest can serve
// it back. The engine itself stays a pure function; the "last
// analysis" lives here, owned by the host.
type Memo struct {
	mu       sync.Mutex
	strategy string
	ranked   []scoring.ScoredTask
}

func NewMemo() *Memo {
	return &Memo{}
}

func (m *Memo) Store(strategy string, ranked []scoring.ScoredTask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.strategy = strategy
	m.ranked = ranked
}

func (m *Memo) Load() (strategy string, ranked []scoring.ScoredTask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.strategy, m.ranked
}
