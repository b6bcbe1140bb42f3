package application

import (
	"context"
	"sync"

	"pricebot/internal/domain"
)

// MemoryStateStore keeps state for the life of the process only.
type MemoryStateStore struct {
	mu sync.RWMutex
	st domain.State
}

var _ StateStore = (*MemoryStateStore)(nil)

func (m *MemoryStateStore) Load(context.Context) (domain.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyState(m.st), nil
}

func (m *MemoryStateStore) Save(_ context.Context, st domain.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st = copyState(st)
	return nil
}

func copyState(st domain.State) domain.State {
	if st.Live == nil {
		return domain.State{}
	}
	live := *st.Live
	return domain.State{Live: &live}
}
