package roadmap

import (
	"context"
	"sync"
	"time"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	roadmaps map[string][]Roadmap
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		roadmaps: make(map[string][]Roadmap),
		now:      time.Now,
	}
}

func (m *MemoryRepository) ListTitles(ctx context.Context, email string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	titles := make([]string, 0, len(m.roadmaps[email]))
	for _, r := range m.roadmaps[email] {
		titles = append(titles, r.Title)
	}
	return titles, nil
}

func (m *MemoryRepository) Save(ctx context.Context, rm *Roadmap) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	list := m.roadmaps[rm.Email]
	for i := range list {
		if list[i].Title == rm.Title {
			list[i].Nodes = nonNil(rm.Nodes)
			list[i].Edges = nonNil(rm.Edges)
			list[i].UpdatedAt = now
			return false, nil
		}
	}

	m.roadmaps[rm.Email] = append(list, Roadmap{
		Email:     rm.Email,
		Title:     rm.Title,
		Nodes:     nonNil(rm.Nodes),
		Edges:     nonNil(rm.Edges),
		CreatedAt: now,
		UpdatedAt: now,
	})
	return true, nil
}

func (m *MemoryRepository) Get(ctx context.Context, email, title string) (*Roadmap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.roadmaps[email] {
		if r.Title == title {
			out := r
			return &out, nil
		}
	}
	return nil, ErrRoadmapNotFound
}
