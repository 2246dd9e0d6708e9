package booking

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps rosters in process memory. Mutations on the same
// class are serialized by a per-class mutex, so it is only correct for a
// single running instance.
type MemoryRepository struct {
	mu      sync.RWMutex
	rosters map[string]*Roster
	locks   keyedMutex
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rosters: make(map[string]*Roster),
		locks:   keyedMutex{locks: make(map[string]*sync.Mutex)},
	}
}

func (m *MemoryRepository) CreateClass(ctx context.Context, class *Class) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rosters[class.ClassID]; exists {
		return ErrClassExists
	}

	c := *class
	c.BookingsCount = 0
	c.WaitlistCount = 0
	m.rosters[c.ClassID] = &Roster{Class: c}
	*class = c

	return nil
}

func (m *MemoryRepository) GetClass(ctx context.Context, classID string) (*Class, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rosters[classID]
	if !ok {
		return nil, ErrClassNotFound
	}
	c := r.Class
	return &c, nil
}

func (m *MemoryRepository) ListClasses(ctx context.Context) ([]Class, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	classes := make([]Class, 0, len(m.rosters))
	for _, r := range m.rosters {
		classes = append(classes, r.Class)
	}
	sortClasses(classes)
	return classes, nil
}

func (m *MemoryRepository) GetRoster(ctx context.Context, classID string) (*Roster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rosters[classID]
	if !ok {
		return nil, ErrClassNotFound
	}
	return r.Clone(), nil
}

func (m *MemoryRepository) ListUserBookings(ctx context.Context, userID string) ([]UserBooking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []Entry
	for _, r := range m.rosters {
		for _, e := range r.Bookings {
			if e.UserID == userID {
				entries = append(entries, e)
			}
		}
	}
	return toUserBookings(entries), nil
}

func (m *MemoryRepository) UpdateRoster(ctx context.Context, classID string, fn func(*Roster) error) (*Roster, error) {
	unlock := m.locks.lock(classID)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	stored, ok := m.rosters[classID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrClassNotFound
	}

	working := stored.Clone()
	if err := mutate(working, fn); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.rosters[classID] = working
	m.mu.Unlock()

	return working.Clone(), nil
}

// put replaces a stored roster verbatim. Tests use it to plant corrupt state.
func (m *MemoryRepository) put(r *Roster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosters[r.Class.ClassID] = r.Clone()
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func sortClasses(classes []Class) {
	sort.SliceStable(classes, func(i, j int) bool {
		if classes[i].CreatedAt.Equal(classes[j].CreatedAt) {
			return classes[i].ClassID < classes[j].ClassID
		}
		return classes[i].CreatedAt.Before(classes[j].CreatedAt)
	})
}

func toUserBookings(entries []Entry) []UserBooking {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	out := make([]UserBooking, 0, len(entries))
	for _, e := range entries {
		out = append(out, UserBooking{
			ClassID:     e.ClassID,
			ClassName:   e.ClassName,
			BookingDate: e.BookingDate,
		})
	}
	return out
}
