package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/dnvishnu12/slot-booking-backend/internal/logger"
	"github.com/dnvishnu12/slot-booking-backend/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
	retryDelay     = 5 * time.Second
	popTimeout     = 2 * time.Second

	queueReportInterval = 15 * time.Second
)

const (
	TypeConfirmation = "booking_confirmation"
	TypeWaitlisted   = "waitlisted"
	TypePromotion    = "waitlist_promotion"
	TypeCancellation = "booking_cancellation"
)

type EmailJob struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
	send     sendFunc
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
		send:     smtp.SendMail,
	}
}

func (s *Service) enqueue(ctx context.Context, jobType, to, name, subject, body string) error {
	job := EmailJob{
		Type:    jobType,
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Error("failed to marshal email job", "error", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Error("failed to queue email", "to", to, "type", jobType, "error", err)
		metrics.RecordEmail(jobType, "queue_failed")
		return err
	}

	logger.Debug("email queued", "to", to, "type", jobType)
	return nil
}

// Start drains the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("email worker started")

	go s.reportQueueLength(ctx, queueReportInterval)

	for {
		select {
		case <-ctx.Done():
			logger.Info("email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

// reportQueueLength keeps the queue gauge current until ctx is cancelled.
func (s *Service) reportQueueLength(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.QueueLength(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, popTimeout, queueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			logger.Warn("email queue pop failed", "error", err)
			time.Sleep(popTimeout)
		}
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("bad email job", "error", err)
		return
	}

	s.deliver(ctx, job)
}

func (s *Service) deliver(ctx context.Context, job EmailJob) {
	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Error("failed to send email", "to", job.To, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			select {
			case <-ctx.Done():
			case <-time.After(retryDelay):
			}
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, string(data))
			metrics.RecordEmail(job.Type, "retry")
			return
		}

		s.saveFailed(job, err)
		metrics.RecordEmail(job.Type, "failed")
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Info("email sent", "to", job.To, "type", job.Type)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", headerValue(s.fromName), headerValue(s.from))
	message += fmt.Sprintf("To: %s\r\n", headerValue(job.To))
	message += fmt.Sprintf("Subject: %s\r\n", headerValue(job.Subject))
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return s.send(addr, auth, s.from, []string{job.To}, []byte(message))
}

var headerReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// headerValue folds line breaks so user input cannot start a new header.
func headerValue(v string) string {
	return strings.TrimSpace(headerReplacer.Replace(v))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, string(data))
	logger.Error("email moved to failed queue", "to", job.To, "type", job.Type)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, err := s.redis.LLen(ctx, queueKey).Result()
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("email queue length unavailable", "error", err)
		}
		return 0
	}
	metrics.EmailQueueLength.Set(float64(length))
	return length
}

func (s *Service) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendBookingConfirmation(ctx context.Context, email, name, className, bookingDate string) error {
	subject := "Booking Confirmed - " + className
	body := fmt.Sprintf(`Hi %s,

Your booking is confirmed!

Class: %s
Date: %s

See you there!`, name, className, bookingDate)

	return s.enqueue(ctx, TypeConfirmation, email, name, subject, body)
}

func (s *Service) SendWaitlisted(ctx context.Context, email, name, className, bookingDate string, position int) error {
	subject := "Waitlisted - " + className
	body := fmt.Sprintf(`Hi %s,

%s is full for %s. You are number %d on the waitlist.
We will email you as soon as a slot opens up.`, name, className, bookingDate, position)

	return s.enqueue(ctx, TypeWaitlisted, email, name, subject, body)
}

func (s *Service) SendPromotion(ctx context.Context, email, name, className, bookingDate string) error {
	subject := "You're in! - " + className
	body := fmt.Sprintf(`Hi %s,

A slot opened up and your waitlist entry has been confirmed.

Class: %s
Date: %s`, name, className, bookingDate)

	return s.enqueue(ctx, TypePromotion, email, name, subject, body)
}

func (s *Service) SendCancellation(ctx context.Context, email, name, className, bookingDate string) error {
	subject := "Booking Cancelled - " + className
	body := fmt.Sprintf(`Hi %s,

Your booking has been cancelled:

Class: %s
Date: %s`, name, className, bookingDate)

	return s.enqueue(ctx, TypeCancellation, email, name, subject, body)
}
