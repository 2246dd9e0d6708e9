package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

const (
	listBooking  = "booking"
	listWaitlist = "waitlist"
)

const classColumns = `class_id, class_name, description, icon, color, total_slots, bookings_count, waitlist_count, created_at`

// entryRow is an Entry as stored in class_entries, tagged with its list and
// its 0-based position inside that list.
type entryRow struct {
	List     string `db:"list"`
	Position int    `db:"position"`
	Entry
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateClass(ctx context.Context, class *Class) error {
	query := `
		INSERT INTO classes (class_id, class_name, description, icon, color, total_slots)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (class_id) DO NOTHING
		RETURNING ` + classColumns

	var created Class
	err := r.db.GetContext(ctx, &created, query,
		class.ClassID, class.ClassName, class.Description, class.Icon, class.Color, class.TotalSlots)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClassExists
		}
		return storageError("insert class", err)
	}

	*class = created
	return nil
}

func (r *repository) GetClass(ctx context.Context, classID string) (*Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE class_id = $1`

	var class Class
	err := r.db.GetContext(ctx, &class, query, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, storageError("get class", err)
	}

	return &class, nil
}

func (r *repository) ListClasses(ctx context.Context) ([]Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes ORDER BY created_at ASC, class_id ASC`

	classes := []Class{}
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, storageError("list classes", err)
	}

	return classes, nil
}

func (r *repository) GetRoster(ctx context.Context, classID string) (*Roster, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageError("begin transaction", err)
	}
	defer tx.Rollback()

	roster, err := loadRoster(ctx, tx, classID, "FOR SHARE")
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError("commit", err)
	}
	return roster, nil
}

func (r *repository) ListUserBookings(ctx context.Context, userID string) ([]UserBooking, error) {
	query := `
		SELECT class_id, class_name, booking_date
		FROM class_entries
		WHERE user_id = $1 AND list = 'booking'
		ORDER BY created_at ASC
	`

	bookings := []UserBooking{}
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, storageError("list user bookings", err)
	}

	return bookings, nil
}

func (r *repository) UpdateRoster(ctx context.Context, classID string, fn func(*Roster) error) (*Roster, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageError("begin transaction", err)
	}
	defer tx.Rollback()

	roster, err := loadRoster(ctx, tx, classID, "FOR UPDATE")
	if err != nil {
		return nil, err
	}

	if err := mutate(roster, fn); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM class_entries WHERE class_id = $1`, classID); err != nil {
		return nil, storageError("clear entries", err)
	}

	if err := insertEntries(ctx, tx, listBooking, roster.Bookings); err != nil {
		return nil, err
	}
	if err := insertEntries(ctx, tx, listWaitlist, roster.Waitlist); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE classes SET bookings_count = $1, waitlist_count = $2 WHERE class_id = $3`,
		roster.Class.BookingsCount, roster.Class.WaitlistCount, classID,
	)
	if err != nil {
		return nil, storageError("update counters", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError("commit", err)
	}

	return roster, nil
}

func loadRoster(ctx context.Context, tx *sqlx.Tx, classID, lock string) (*Roster, error) {
	var class Class
	err := tx.GetContext(ctx, &class,
		`SELECT `+classColumns+` FROM classes WHERE class_id = $1 `+lock, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, storageError("lock class", err)
	}

	var rows []entryRow
	err = tx.SelectContext(ctx, &rows, `
		SELECT list, position, class_id, class_name, user_id, user_name, user_email, booking_date, created_at
		FROM class_entries
		WHERE class_id = $1
		ORDER BY list ASC, position ASC
	`, classID)
	if err != nil {
		return nil, storageError("load entries", err)
	}

	roster := &Roster{Class: class}
	for _, row := range rows {
		switch row.List {
		case listBooking:
			roster.Bookings = append(roster.Bookings, row.Entry)
		case listWaitlist:
			roster.Waitlist = append(roster.Waitlist, row.Entry)
		}
	}

	return roster, nil
}

func insertEntries(ctx context.Context, tx *sqlx.Tx, list string, entries []Entry) error {
	for i, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO class_entries (class_id, list, position, class_name, user_id, user_name, user_email, booking_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, e.ClassID, list, i, e.ClassName, e.UserID, e.UserName, e.UserEmail, e.BookingDate, e.CreatedAt)
		if err != nil {
			return storageError("insert "+list+" entry", err)
		}
	}
	return nil
}
