package booking

import (
	"errors"
	"net/http"

	"github.com/dnvishnu12/slot-booking-backend/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Create a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        request body booking.CreateClassRequest true "Class payload"
// @Success      201 {object} booking.Class
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /create_class [post]
func (h *Handler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if !api.BindJSON(c, &req) {
		return
	}

	class, err := h.service.CreateClass(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create class")
		return
	}

	c.JSON(http.StatusCreated, class)
}

// @Summary      Book a slot
// @Description  Confirms a slot while capacity remains, otherwise appends to the waitlist
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body booking.BookSlotRequest true "Booking payload"
// @Success      200 {object} booking.BookSlotResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /book_slot [post]
func (h *Handler) BookSlot(c *gin.Context) {
	var req BookSlotRequest
	if !api.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.RequestSlot(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to book slot")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Cancel a booking
// @Description  Removes the user's confirmed bookings and promotes the head of the waitlist
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body booking.CancelBookingRequest true "Cancellation payload"
// @Success      200 {object} booking.CancelBookingResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /cancel_booking [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	var req CancelBookingRequest
	if !api.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.CancelSlot(c.Request.Context(), req.ClassID, req.UserID)
	if err != nil {
		respondError(c, err, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      List classes
// @Tags         classes
// @Produce      json
// @Success      200 {array} booking.ClassWithAvailability
// @Failure      500 {object} api.ErrorResponse
// @Router       /class_list [get]
func (h *Handler) ListClasses(c *gin.Context) {
	classes, err := h.service.ListClasses(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch classes")
		return
	}

	c.JSON(http.StatusOK, classes)
}

// @Summary      Class roster
// @Description  Confirmed bookings and waitlist of one class
// @Tags         classes
// @Produce      json
// @Param        classId path string true "Class ID"
// @Success      200 {object} booking.Roster
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /class_bookings/{classId} [get]
func (h *Handler) ClassBookings(c *gin.Context) {
	roster, err := h.service.GetClassBookings(c.Request.Context(), c.Param("classId"))
	if err != nil {
		respondError(c, err, "Failed to fetch class bookings")
		return
	}

	c.JSON(http.StatusOK, roster)
}

// @Summary      List a user's bookings
// @Tags         bookings
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} booking.UserBookingsResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /user_bookings/{userId} [get]
func (h *Handler) UserBookings(c *gin.Context) {
	userID := c.Param("userId")

	bookings, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, UserBookingsResponse{UserID: userID, Bookings: bookings})
}

// RegisterRoutes mounts the booking endpoints on r.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/create_class", h.CreateClass)
	r.POST("/book_slot", h.BookSlot)
	r.POST("/cancel_booking", h.CancelBooking)
	r.GET("/class_list", h.ListClasses)
	r.GET("/class_bookings/:classId", h.ClassBookings)
	r.GET("/user_bookings/:userId", h.UserBookings)
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidClass), errors.Is(err, ErrInvalidEntry):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrClassNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
	case errors.Is(err, ErrNoBookings):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No bookings found for this user"})
	case errors.Is(err, ErrClassExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Class already exists"})
	case errors.Is(err, ErrAlreadyBooked):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "User already booked or waitlisted for this class"})
	case errors.Is(err, ErrInvariantViolation):
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Class data is inconsistent"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
