package booking

import "context"

type Repository interface {
	CreateClass(ctx context.Context, class *Class) error
	GetClass(ctx context.Context, classID string) (*Class, error)
	ListClasses(ctx context.Context) ([]Class, error)
	GetRoster(ctx context.Context, classID string) (*Roster, error)
	ListUserBookings(ctx context.Context, userID string) ([]UserBooking, error)

	// UpdateRoster loads the roster of classID under an exclusive per-class
	// lock, applies fn and persists the result atomically, counters included.
	// fn may run more than once on backends with optimistic concurrency and
	// must not have side effects beyond the roster and its own closure.
	UpdateRoster(ctx context.Context, classID string, fn func(*Roster) error) (*Roster, error)
}
