package booking

import "fmt"

// Roster is the mutable state of one class: its record plus the confirmed
// list and the FIFO waitlist. Every mutation goes through a Repository's
// UpdateRoster so it happens under the class's exclusive lock.
type Roster struct {
	Class    Class   `json:"class"`
	Bookings []Entry `json:"bookings"`
	Waitlist []Entry `json:"waitlist"`
}

func (r *Roster) Clone() *Roster {
	out := &Roster{Class: r.Class}
	if len(r.Bookings) > 0 {
		out.Bookings = append([]Entry(nil), r.Bookings...)
	}
	if len(r.Waitlist) > 0 {
		out.Waitlist = append([]Entry(nil), r.Waitlist...)
	}
	return out
}

// CheckInvariants reports counter drift or overbooking. It never repairs.
func (r *Roster) CheckInvariants() error {
	if r.Class.BookingsCount != len(r.Bookings) {
		return fmt.Errorf("%w: class %s bookingsCount=%d but %d bookings stored",
			ErrInvariantViolation, r.Class.ClassID, r.Class.BookingsCount, len(r.Bookings))
	}
	if r.Class.WaitlistCount != len(r.Waitlist) {
		return fmt.Errorf("%w: class %s waitlistCount=%d but %d waitlist entries stored",
			ErrInvariantViolation, r.Class.ClassID, r.Class.WaitlistCount, len(r.Waitlist))
	}
	if len(r.Bookings) > r.Class.TotalSlots {
		return fmt.Errorf("%w: class %s has %d bookings for %d slots",
			ErrInvariantViolation, r.Class.ClassID, len(r.Bookings), r.Class.TotalSlots)
	}
	return nil
}

// Holds reports whether userID appears in either list.
func (r *Roster) Holds(userID string) bool {
	for _, e := range r.Bookings {
		if e.UserID == userID {
			return true
		}
	}
	for _, e := range r.Waitlist {
		if e.UserID == userID {
			return true
		}
	}
	return false
}

// Request appends e to the confirmed list while slots remain, otherwise to
// the tail of the waitlist. The returned position is 1-based within the
// list the entry landed in.
func (r *Roster) Request(e Entry) (SlotStatus, int) {
	if len(r.Bookings) < r.Class.TotalSlots {
		r.Bookings = append(r.Bookings, e)
		r.syncCounters()
		return StatusConfirmed, len(r.Bookings)
	}

	r.Waitlist = append(r.Waitlist, e)
	r.syncCounters()
	return StatusWaitlisted, len(r.Waitlist)
}

// Cancel removes every confirmed entry of userID and then promotes at most
// one entry, the waitlist head, even when several slots were freed.
func (r *Roster) Cancel(userID string) (removed int, promoted *Entry) {
	kept := make([]Entry, 0, len(r.Bookings))
	for _, e := range r.Bookings {
		if e.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return 0, nil
	}
	r.Bookings = kept

	if len(r.Waitlist) > 0 && len(r.Bookings) < r.Class.TotalSlots {
		head := r.Waitlist[0]
		r.Waitlist = append([]Entry(nil), r.Waitlist[1:]...)
		r.Bookings = append(r.Bookings, head)
		promoted = &head
	}

	r.syncCounters()
	return removed, promoted
}

func (r *Roster) syncCounters() {
	r.Class.BookingsCount = len(r.Bookings)
	r.Class.WaitlistCount = len(r.Waitlist)
}

// mutate is the shared body of every UpdateRoster implementation.
func mutate(r *Roster, fn func(*Roster) error) error {
	if err := r.CheckInvariants(); err != nil {
		return err
	}
	if err := fn(r); err != nil {
		return err
	}
	r.syncCounters()
	return r.CheckInvariants()
}

func withAvailability(c Class) ClassWithAvailability {
	available := c.TotalSlots - c.BookingsCount
	if available < 0 {
		available = 0
	}
	return ClassWithAvailability{
		Class:          c,
		AvailableSlots: available,
		IsFull:         available == 0,
	}
}
