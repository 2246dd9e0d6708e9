package booking

import "time"

type SlotStatus string

const (
	StatusConfirmed  SlotStatus = "confirmed"
	StatusWaitlisted SlotStatus = "waitlisted"
)

type CancelOutcome string

const (
	OutcomeCancelled              CancelOutcome = "cancelled"
	OutcomeCancelledWithPromotion CancelOutcome = "cancelled_with_promotion"
)

const bookingDateLayout = "2006-01-02"

// Class is one class offering. BookingsCount and WaitlistCount mirror the
// lengths of the roster lists.
type Class struct {
	ClassID       string    `db:"class_id" bson:"class_id" json:"classId"`
	ClassName     string    `db:"class_name" bson:"class_name" json:"className"`
	Description   string    `db:"description" bson:"description" json:"description"`
	Icon          string    `db:"icon" bson:"icon" json:"icon"`
	Color         string    `db:"color" bson:"color" json:"color"`
	TotalSlots    int       `db:"total_slots" bson:"total_slots" json:"totalSlots"`
	BookingsCount int       `db:"bookings_count" bson:"bookings_count" json:"bookingsCount"`
	WaitlistCount int       `db:"waitlist_count" bson:"waitlist_count" json:"waitlistCount"`
	CreatedAt     time.Time `db:"created_at" bson:"created_at" json:"createdAt"`
}

type ClassWithAvailability struct {
	Class
	AvailableSlots int  `json:"availableSlots"`
	IsFull         bool `json:"isFull"`
}

// Entry is one user's claim on a class, either confirmed or waitlisted.
type Entry struct {
	ClassID     string    `db:"class_id" bson:"class_id" json:"classId"`
	ClassName   string    `db:"class_name" bson:"class_name" json:"className"`
	UserID      string    `db:"user_id" bson:"user_id" json:"userId"`
	UserName    string    `db:"user_name" bson:"user_name" json:"userName"`
	UserEmail   string    `db:"user_email" bson:"user_email,omitempty" json:"userEmail,omitempty"`
	BookingDate string    `db:"booking_date" bson:"booking_date" json:"bookingDate"`
	CreatedAt   time.Time `db:"created_at" bson:"created_at" json:"createdAt"`
}

type UserBooking struct {
	ClassID     string `db:"class_id" json:"classId"`
	ClassName   string `db:"class_name" json:"className"`
	BookingDate string `db:"booking_date" json:"bookingDate"`
}

type CreateClassRequest struct {
	ClassID     string `json:"classId" binding:"required,max=64"`
	ClassName   string `json:"className" binding:"required,max=128"`
	Description string `json:"description" binding:"max=1024"`
	Icon        string `json:"icon" binding:"max=256"`
	Color       string `json:"color" binding:"max=32"`
	TotalSlots  int    `json:"totalSlots" binding:"required,min=1"`
}

type BookSlotRequest struct {
	ClassID     string `json:"classId" binding:"required"`
	UserID      string `json:"userId" binding:"required"`
	UserName    string `json:"userName" binding:"required"`
	UserEmail   string `json:"userEmail" binding:"omitempty,email"`
	BookingDate string `json:"bookingDate" binding:"required,datetime=2006-01-02" example:"2024-06-01"`
}

type CancelBookingRequest struct {
	ClassID string `json:"classId" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
}

type BookSlotResponse struct {
	Status   SlotStatus `json:"status" example:"confirmed"`
	Message  string     `json:"message" example:"Slot booked successfully"`
	Position int        `json:"position" example:"1"`
	Booking  Entry      `json:"booking"`
}

type CancelBookingResponse struct {
	Outcome  CancelOutcome `json:"outcome" example:"cancelled"`
	Message  string        `json:"message" example:"Booking cancelled successfully"`
	Removed  int           `json:"removed" example:"1"`
	Promoted *Entry        `json:"promoted,omitempty"`
}

type UserBookingsResponse struct {
	UserID   string        `json:"userId"`
	Bookings []UserBooking `json:"bookings"`
}
