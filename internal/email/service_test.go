package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnvishnu12/slot-booking-backend/internal/logger"
	"github.com/dnvishnu12/slot-booking-backend/internal/metrics"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestService(rdb *redis.Client, sendErr error) (*Service, *[]sentMail) {
	var sent []sentMail
	svc := &Service{
		redis:    rdb,
		from:     "noreply@slotbooking.local",
		fromName: "Slot Booking",
		smtpHost: "smtp.test.com",
		smtpPort: "587",
		smtpUser: "test@example.com",
		smtpPass: "password",
		send: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			if sendErr != nil {
				return sendErr
			}
			sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
			return nil
		},
	}
	return svc, &sent
}

func TestSendBookingConfirmation_QueueError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetErr(assert.AnError)

	svc, _ := newTestService(db, nil)

	err := svc.SendBookingConfirmation(ctx, "user@example.com", "User", "Yoga", "2024-06-01")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingNotifications(t *testing.T) {
	tests := []struct {
		name     string
		jobType  string
		send     func(*Service) error
		contains string
	}{
		{
			name:     "confirmation",
			jobType:  TypeConfirmation,
			contains: "Booking Confirmed - Yoga",
			send: func(s *Service) error {
				return s.SendBookingConfirmation(context.Background(), "a@example.com", "Ann", "Yoga", "2024-06-01")
			},
		},
		{
			name:     "waitlisted",
			jobType:  TypeWaitlisted,
			contains: "number 3 on the waitlist",
			send: func(s *Service) error {
				return s.SendWaitlisted(context.Background(), "a@example.com", "Ann", "Yoga", "2024-06-01", 3)
			},
		},
		{
			name:     "promotion",
			jobType:  TypePromotion,
			contains: "waitlist entry has been confirmed",
			send: func(s *Service) error {
				return s.SendPromotion(context.Background(), "a@example.com", "Ann", "Yoga", "2024-06-01")
			},
		},
		{
			name:     "cancellation",
			jobType:  TypeCancellation,
			contains: "Booking Cancelled - Yoga",
			send: func(s *Service) error {
				return s.SendCancellation(context.Background(), "a@example.com", "Ann", "Yoga", "2024-06-01")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := redismock.NewClientMock()
			mock.Regexp().ExpectLPush("emails", `"type":"`+tt.jobType+`".*`+tt.contains).SetVal(1)

			svc, _ := newTestService(db, nil)

			assert.NoError(t, tt.send(svc))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProcessNext_Delivers(t *testing.T) {
	db, mock := redismock.NewClientMock()

	job := EmailJob{Type: TypeConfirmation, To: "a@example.com", Name: "Ann", Subject: "Hi", Body: "Body"}
	data, err := json.Marshal(job)
	require.NoError(t, err)

	mock.ExpectBRPop(popTimeout, "emails").SetVal([]string{"emails", string(data)})

	svc, sent := newTestService(db, nil)
	svc.processNext(context.Background())

	require.Len(t, *sent, 1)
	assert.Equal(t, "smtp.test.com:587", (*sent)[0].addr)
	assert.Equal(t, []string{"a@example.com"}, (*sent)[0].to)
	assert.Contains(t, (*sent)[0].msg, "Subject: Hi")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliver_RetriesThenFails(t *testing.T) {
	db, mock := redismock.NewClientMock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc, _ := newTestService(db, errors.New("smtp down"))

	mock.Regexp().ExpectLPush("emails", `"tries":1`).SetVal(1)
	svc.deliver(ctx, EmailJob{Type: TypePromotion, To: "a@example.com"})

	mock.Regexp().ExpectLPush("emails:failed", `smtp down`).SetVal(1)
	svc.deliver(ctx, EmailJob{Type: TypePromotion, To: "a@example.com", Tries: maxTries - 1})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen("emails").SetVal(5)

	svc, _ := newTestService(db, nil)

	length := svc.QueueLength(ctx)
	assert.Equal(t, int64(5), length)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength_ErrorKeepsGauge(t *testing.T) {
	db, mock := redismock.NewClientMock()

	metrics.EmailQueueLength.Set(9)
	mock.ExpectLLen("emails").SetErr(assert.AnError)

	svc, _ := newTestService(db, nil)

	assert.Equal(t, int64(0), svc.QueueLength(context.Background()))
	assert.Equal(t, float64(9), testutil.ToFloat64(metrics.EmailQueueLength))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportQueueLength_SetsGauge(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx, cancel := context.WithCancel(context.Background())

	metrics.EmailQueueLength.Set(0)
	mock.ExpectLLen("emails").SetVal(4)

	svc, _ := newTestService(db, nil)

	done := make(chan struct{})
	go func() {
		svc.reportQueueLength(ctx, time.Hour)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.EmailQueueLength) == 4
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendNow_FoldsHeaderLineBreaks(t *testing.T) {
	db, _ := redismock.NewClientMock()
	svc, sent := newTestService(db, nil)

	err := svc.sendNow(EmailJob{
		To:      "a@example.com",
		Subject: "Booking Confirmed - Yoga\r\nBcc: victim@example.com",
		Body:    "Body",
	})
	require.NoError(t, err)
	require.Len(t, *sent, 1)

	headers, body, found := strings.Cut((*sent)[0].msg, "\r\n\r\n")
	require.True(t, found)
	assert.Equal(t, "Body", body)

	lines := strings.Split(headers, "\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Subject: Booking Confirmed - Yoga Bcc: victim@example.com", lines[2])
	for _, line := range lines {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), line)
	}
}

func TestHeaderValue(t *testing.T) {
	assert.Equal(t, "Yoga", headerValue("Yoga"))
	assert.Equal(t, "a b c", headerValue("a\r\nb\nc"))
	assert.Equal(t, "x", headerValue("x\r\n"))
}
