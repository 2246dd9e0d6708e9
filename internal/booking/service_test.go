package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateClass(ctx context.Context, class *Class) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *MockRepository) GetClass(ctx context.Context, classID string) (*Class, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Class), args.Error(1)
}

func (m *MockRepository) ListClasses(ctx context.Context) ([]Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Class), args.Error(1)
}

func (m *MockRepository) GetRoster(ctx context.Context, classID string) (*Roster, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Roster), args.Error(1)
}

func (m *MockRepository) ListUserBookings(ctx context.Context, userID string) ([]UserBooking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]UserBooking), args.Error(1)
}

func (m *MockRepository) UpdateRoster(ctx context.Context, classID string, fn func(*Roster) error) (*Roster, error) {
	args := m.Called(ctx, classID, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Roster), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendBookingConfirmation(ctx context.Context, email, name, className, bookingDate string) error {
	return m.Called(ctx, email, name, className, bookingDate).Error(0)
}

func (m *MockNotifier) SendWaitlisted(ctx context.Context, email, name, className, bookingDate string, position int) error {
	return m.Called(ctx, email, name, className, bookingDate, position).Error(0)
}

func (m *MockNotifier) SendPromotion(ctx context.Context, email, name, className, bookingDate string) error {
	return m.Called(ctx, email, name, className, bookingDate).Error(0)
}

func (m *MockNotifier) SendCancellation(ctx context.Context, email, name, className, bookingDate string) error {
	return m.Called(ctx, email, name, className, bookingDate).Error(0)
}

func newTestService(t *testing.T, notifier Notifier) (*service, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	svc := NewService(repo, notifier).(*service)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo
}

func createClass(t *testing.T, svc Service, classID string, slots int) {
	t.Helper()
	_, err := svc.CreateClass(context.Background(), CreateClassRequest{
		ClassID:    classID,
		ClassName:  "Class " + classID,
		TotalSlots: slots,
	})
	require.NoError(t, err)
}

func book(userID, classID string) BookSlotRequest {
	return BookSlotRequest{
		ClassID:     classID,
		UserID:      userID,
		UserName:    "User " + userID,
		BookingDate: "2024-06-01",
	}
}

func TestService_CreateClass(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	class, err := svc.CreateClass(ctx, CreateClassRequest{ClassID: " yoga ", ClassName: "Yoga", TotalSlots: 10})
	require.NoError(t, err)
	assert.Equal(t, "yoga", class.ClassID)
	assert.Zero(t, class.BookingsCount)
	assert.Zero(t, class.WaitlistCount)

	_, err = svc.CreateClass(ctx, CreateClassRequest{ClassID: "yoga", ClassName: "Yoga", TotalSlots: 10})
	assert.ErrorIs(t, err, ErrClassExists)
}

func TestService_CreateClass_Invalid(t *testing.T) {
	svc, _ := newTestService(t, nil)

	tests := []struct {
		name string
		req  CreateClassRequest
	}{
		{"missing id", CreateClassRequest{ClassName: "Yoga", TotalSlots: 1}},
		{"missing name", CreateClassRequest{ClassID: "yoga", TotalSlots: 1}},
		{"zero slots", CreateClassRequest{ClassID: "yoga", ClassName: "Yoga"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateClass(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidClass)
		})
	}
}

func TestService_RequestSlot_ConfirmsThenWaitlists(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	createClass(t, svc, "yoga", 2)

	resp, err := svc.RequestSlot(ctx, book("u1", "yoga"))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.Equal(t, "Class yoga", resp.Booking.ClassName)

	resp, err = svc.RequestSlot(ctx, book("u2", "yoga"))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, resp.Status)

	resp, err = svc.RequestSlot(ctx, book("u3", "yoga"))
	require.NoError(t, err)
	assert.Equal(t, StatusWaitlisted, resp.Status)
	assert.Equal(t, 1, resp.Position)

	classes, err := svc.ListClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, 2, classes[0].BookingsCount)
	assert.Equal(t, 1, classes[0].WaitlistCount)
	assert.True(t, classes[0].IsFull)
}

func TestService_RequestSlot_Errors(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	createClass(t, svc, "yoga", 1)

	_, err := svc.RequestSlot(ctx, book("u1", "missing"))
	assert.ErrorIs(t, err, ErrClassNotFound)

	_, err = svc.RequestSlot(ctx, book("u1", "yoga"))
	require.NoError(t, err)

	_, err = svc.RequestSlot(ctx, book("u1", "yoga"))
	assert.ErrorIs(t, err, ErrAlreadyBooked)

	_, err = svc.RequestSlot(ctx, book("u2", "yoga"))
	require.NoError(t, err)
	_, err = svc.RequestSlot(ctx, book("u2", "yoga"))
	assert.ErrorIs(t, err, ErrAlreadyBooked)

	bad := book("u3", "yoga")
	bad.BookingDate = "01/06/2024"
	_, err = svc.RequestSlot(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestService_CancelSlot_PromotesWaitlistHead(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	createClass(t, svc, "yoga", 1)

	for _, u := range []string{"u1", "u2", "u3"} {
		_, err := svc.RequestSlot(ctx, book(u, "yoga"))
		require.NoError(t, err)
	}

	resp, err := svc.CancelSlot(ctx, "yoga", "u1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelledWithPromotion, resp.Outcome)
	assert.Equal(t, 1, resp.Removed)
	require.NotNil(t, resp.Promoted)
	assert.Equal(t, "u2", resp.Promoted.UserID)

	roster, err := svc.GetClassBookings(ctx, "yoga")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, userIDs(roster.Bookings))
	assert.Equal(t, []string{"u3"}, userIDs(roster.Waitlist))
}

func TestService_CancelSlot_WithoutWaitlist(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	createClass(t, svc, "yoga", 2)

	_, err := svc.RequestSlot(ctx, book("u1", "yoga"))
	require.NoError(t, err)

	resp, err := svc.CancelSlot(ctx, "yoga", "u1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, resp.Outcome)
	assert.Nil(t, resp.Promoted)

	_, err = svc.CancelSlot(ctx, "yoga", "u1")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.CancelSlot(ctx, "missing", "u1")
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestService_ListUserBookings(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	createClass(t, svc, "yoga", 1)

	_, err := svc.RequestSlot(ctx, book("u1", "yoga"))
	require.NoError(t, err)
	_, err = svc.RequestSlot(ctx, book("u2", "yoga"))
	require.NoError(t, err)

	bookings, err := svc.ListUserBookings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []UserBooking{{ClassID: "yoga", ClassName: "Class yoga", BookingDate: "2024-06-01"}}, bookings)

	_, err = svc.ListUserBookings(ctx, "u2")
	assert.ErrorIs(t, err, ErrNoBookings)
}

func TestService_CorruptRosterFailsMutations(t *testing.T) {
	svc, repo := newTestService(t, nil)
	ctx := context.Background()

	repo.put(&Roster{
		Class:    Class{ClassID: "yoga", TotalSlots: 2, BookingsCount: 0},
		Bookings: []Entry{entry("u1")},
	})

	_, err := svc.RequestSlot(ctx, book("u2", "yoga"))
	assert.ErrorIs(t, err, ErrInvariantViolation)

	_, err = svc.CancelSlot(ctx, "yoga", "u1")
	assert.ErrorIs(t, err, ErrInvariantViolation)

	_, err = svc.GetClassBookings(ctx, "yoga")
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestService_Notifications(t *testing.T) {
	notifier := new(MockNotifier)
	svc, _ := newTestService(t, notifier)
	ctx := context.Background()
	createClass(t, svc, "yoga", 1)

	first := book("u1", "yoga")
	first.UserEmail = "u1@example.com"
	second := book("u2", "yoga")
	second.UserEmail = "u2@example.com"

	notifier.On("SendBookingConfirmation", mock.Anything, "u1@example.com", "User u1", "Class yoga", "2024-06-01").Return(nil)
	notifier.On("SendWaitlisted", mock.Anything, "u2@example.com", "User u2", "Class yoga", "2024-06-01", 1).Return(nil)
	notifier.On("SendCancellation", mock.Anything, "u1@example.com", "User u1", "Class yoga", "2024-06-01").Return(nil)
	notifier.On("SendPromotion", mock.Anything, "u2@example.com", "User u2", "Class yoga", "2024-06-01").
		Return(errors.New("queue down"))

	_, err := svc.RequestSlot(ctx, first)
	require.NoError(t, err)
	_, err = svc.RequestSlot(ctx, second)
	require.NoError(t, err)

	// a notification failure never fails the committed cancellation
	resp, err := svc.CancelSlot(ctx, "yoga", "u1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelledWithPromotion, resp.Outcome)

	notifier.AssertExpectations(t)
}

func TestService_NoNotificationWithoutEmail(t *testing.T) {
	notifier := new(MockNotifier)
	svc, _ := newTestService(t, notifier)
	createClass(t, svc, "yoga", 1)

	_, err := svc.RequestSlot(context.Background(), book("u1", "yoga"))
	require.NoError(t, err)

	notifier.AssertNotCalled(t, "SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_StorageErrorsPropagate(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, nil)
	ctx := context.Background()

	storageErr := storageError("list classes", errors.New("connection refused"))
	mockRepo.On("ListClasses", mock.Anything).Return(nil, storageErr)
	mockRepo.On("UpdateRoster", mock.Anything, "yoga", mock.Anything).Return(nil, storageErr)

	_, err := svc.ListClasses(ctx)
	assert.ErrorIs(t, err, ErrStorage)

	_, err = svc.RequestSlot(ctx, book("u1", "yoga"))
	assert.ErrorIs(t, err, ErrStorage)

	mockRepo.AssertExpectations(t)
}
