package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dnvishnu12/slot-booking-backend/internal/logger"
	"github.com/dnvishnu12/slot-booking-backend/internal/metrics"
)

// Notifier delivers booking lifecycle messages. *email.Service satisfies it.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, email, name, className, bookingDate string) error
	SendWaitlisted(ctx context.Context, email, name, className, bookingDate string, position int) error
	SendPromotion(ctx context.Context, email, name, className, bookingDate string) error
	SendCancellation(ctx context.Context, email, name, className, bookingDate string) error
}

type Service interface {
	CreateClass(ctx context.Context, req CreateClassRequest) (*Class, error)
	RequestSlot(ctx context.Context, req BookSlotRequest) (*BookSlotResponse, error)
	CancelSlot(ctx context.Context, classID, userID string) (*CancelBookingResponse, error)
	ListClasses(ctx context.Context) ([]ClassWithAvailability, error)
	GetClassBookings(ctx context.Context, classID string) (*Roster, error)
	ListUserBookings(ctx context.Context, userID string) ([]UserBooking, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

// NewService builds the workflow. notifier may be nil.
func NewService(repo Repository, notifier Notifier) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *service) CreateClass(ctx context.Context, req CreateClassRequest) (*Class, error) {
	req.ClassID = strings.TrimSpace(req.ClassID)
	req.ClassName = strings.TrimSpace(req.ClassName)

	if req.ClassID == "" || req.ClassName == "" {
		return nil, fmt.Errorf("%w: classId and className are required", ErrInvalidClass)
	}
	if req.TotalSlots < 1 {
		return nil, fmt.Errorf("%w: totalSlots must be at least 1", ErrInvalidClass)
	}

	class := &Class{
		ClassID:     req.ClassID,
		ClassName:   req.ClassName,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		TotalSlots:  req.TotalSlots,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.CreateClass(ctx, class); err != nil {
		return nil, err
	}

	metrics.RecordClassCreated()
	logger.Info("class created", "class_id", class.ClassID, "total_slots", class.TotalSlots)

	return class, nil
}

func (s *service) RequestSlot(ctx context.Context, req BookSlotRequest) (*BookSlotResponse, error) {
	if strings.TrimSpace(req.ClassID) == "" || strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: classId and userId are required", ErrInvalidEntry)
	}
	if _, err := time.Parse(bookingDateLayout, req.BookingDate); err != nil {
		return nil, fmt.Errorf("%w: bookingDate must be YYYY-MM-DD", ErrInvalidEntry)
	}

	var (
		entry    Entry
		status   SlotStatus
		position int
	)

	_, err := s.repo.UpdateRoster(ctx, req.ClassID, func(r *Roster) error {
		if r.Holds(req.UserID) {
			return ErrAlreadyBooked
		}

		entry = Entry{
			ClassID:     r.Class.ClassID,
			ClassName:   r.Class.ClassName,
			UserID:      req.UserID,
			UserName:    req.UserName,
			UserEmail:   req.UserEmail,
			BookingDate: req.BookingDate,
			CreatedAt:   s.now().UTC(),
		}
		status, position = r.Request(entry)
		return nil
	})
	if err != nil {
		s.reportInvariant(err, req.ClassID)
		return nil, err
	}

	metrics.RecordBooking(string(status))
	logger.Info("slot requested",
		"class_id", req.ClassID,
		"user_id", req.UserID,
		"status", status,
		"position", position,
	)

	resp := &BookSlotResponse{
		Status:   status,
		Position: position,
		Booking:  entry,
	}

	switch status {
	case StatusConfirmed:
		resp.Message = "Slot booked successfully"
		s.notify(ctx, entry, func(n Notifier) error {
			return n.SendBookingConfirmation(ctx, entry.UserEmail, entry.UserName, entry.ClassName, entry.BookingDate)
		})
	case StatusWaitlisted:
		resp.Message = "Class is full, added to waitlist"
		s.notify(ctx, entry, func(n Notifier) error {
			return n.SendWaitlisted(ctx, entry.UserEmail, entry.UserName, entry.ClassName, entry.BookingDate, position)
		})
	}

	return resp, nil
}

func (s *service) CancelSlot(ctx context.Context, classID, userID string) (*CancelBookingResponse, error) {
	if strings.TrimSpace(classID) == "" || strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: classId and userId are required", ErrInvalidEntry)
	}

	var (
		removed   []Entry
		promoted  *Entry
		className string
	)

	_, err := s.repo.UpdateRoster(ctx, classID, func(r *Roster) error {
		removed = removed[:0]
		for _, e := range r.Bookings {
			if e.UserID == userID {
				removed = append(removed, e)
			}
		}

		n, p := r.Cancel(userID)
		if n == 0 {
			return ErrBookingNotFound
		}
		promoted = p
		className = r.Class.ClassName
		return nil
	})
	if err != nil {
		s.reportInvariant(err, classID)
		return nil, err
	}

	resp := &CancelBookingResponse{
		Outcome:  OutcomeCancelled,
		Message:  "Booking cancelled successfully",
		Removed:  len(removed),
		Promoted: promoted,
	}
	if promoted != nil {
		resp.Outcome = OutcomeCancelledWithPromotion
		resp.Message = "Booking cancelled, waitlisted user promoted"
		metrics.RecordPromotion()
	}

	metrics.RecordBookingCancellation(string(resp.Outcome))
	logger.Info("booking cancelled",
		"class_id", classID,
		"user_id", userID,
		"removed", len(removed),
		"promoted", promoted != nil,
	)

	for _, e := range removed {
		e := e
		s.notify(ctx, e, func(n Notifier) error {
			return n.SendCancellation(ctx, e.UserEmail, e.UserName, className, e.BookingDate)
		})
	}
	if promoted != nil {
		p := *promoted
		s.notify(ctx, p, func(n Notifier) error {
			return n.SendPromotion(ctx, p.UserEmail, p.UserName, p.ClassName, p.BookingDate)
		})
	}

	return resp, nil
}

func (s *service) ListClasses(ctx context.Context) ([]ClassWithAvailability, error) {
	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ClassWithAvailability, 0, len(classes))
	for _, c := range classes {
		result = append(result, withAvailability(c))
	}
	return result, nil
}

func (s *service) GetClassBookings(ctx context.Context, classID string) (*Roster, error) {
	roster, err := s.repo.GetRoster(ctx, classID)
	if err != nil {
		return nil, err
	}
	if err := roster.CheckInvariants(); err != nil {
		s.reportInvariant(err, classID)
		return nil, err
	}
	return roster, nil
}

// ListUserBookings returns confirmed bookings only; waitlist entries are
// excluded. An empty result is reported as ErrNoBookings.
func (s *service) ListUserBookings(ctx context.Context, userID string) ([]UserBooking, error) {
	bookings, err := s.repo.ListUserBookings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrNoBookings
	}
	return bookings, nil
}

func (s *service) notify(ctx context.Context, e Entry, send func(Notifier) error) {
	if s.notifier == nil || e.UserEmail == "" {
		return
	}
	if err := send(s.notifier); err != nil {
		logger.Warn("failed to queue booking notification",
			"class_id", e.ClassID,
			"user_id", e.UserID,
			"error", err,
		)
	}
}

func (s *service) reportInvariant(err error, classID string) {
	if !errors.Is(err, ErrInvariantViolation) {
		return
	}
	metrics.RecordInvariantViolation()
	logger.Error("roster invariant violated", "class_id", classID, "error", err)
}
