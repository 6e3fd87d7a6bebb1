package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iSamBa/gym-manager-sub000/internal/logger"
	"github.com/iSamBa/gym-manager-sub000/internal/metrics"
)

const queueKey = "booking_notifications"

const (
	TypeBookingConfirmation = "booking_confirmation"
	TypeCancellation        = "cancellation"
)

// Job is one queued notification for one member. The booking path only
// enqueues; delivery happens in the background worker so a slow SMTP
// server never delays a booking response.
type Job struct {
	Type         string    `json:"type"`
	To           string    `json:"to"`
	Name         string    `json:"name"`
	SessionStart time.Time `json:"session_start"`
	Location     string    `json:"location"`
	MachineName  string    `json:"machine_name"`
	Tries        int       `json:"tries"`
	Created      time.Time `json:"created"`
}

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
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
	}
}

// NewWithClient is used by tests to inject a mock redis client.
func NewWithClient(client *redis.Client) *Service {
	return &Service{redis: client}
}

func (s *Service) Enqueue(ctx context.Context, job Job) error {
	job.Tries = 0
	job.Created = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue %s notification to %s: %v", job.Type, job.To, err)
		return err
	}

	if length, err := s.redis.LLen(ctx, queueKey).Result(); err == nil {
		metrics.NotificationQueueLength.Set(float64(length))
	}

	logger.Infof("Notification queued: %s to %s", job.Type, job.To)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification payload: %v", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send %s notification to %s: %v", job.Type, job.To, err)

		if job.Tries < 3 {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			return
		}

		metrics.RecordNotification(job.Type, "failed")
		return
	}

	metrics.RecordNotification(job.Type, "success")
	logger.Infof("Notification sent to %s", job.To)
}

func (s *Service) sendNow(job Job) error {
	if s.smtpHost == "" {
		return fmt.Errorf("smtp not configured")
	}

	subject, body := s.compose(job)
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.fromName, s.from, job.To, subject, body)

	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	addr := s.smtpHost + ":" + s.smtpPort

	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(msg))
}

func (s *Service) compose(job Job) (string, string) {
	when := job.SessionStart.Format("Mon, 02 Jan 2006 15:04")

	switch job.Type {
	case TypeCancellation:
		return "Your training session was cancelled",
			fmt.Sprintf("Hi %s,\n\nyour session on %s at %s (%s) has been cancelled.",
				job.Name, when, job.Location, job.MachineName)
	default:
		return "Your training session is booked",
			fmt.Sprintf("Hi %s,\n\nyour session is confirmed for %s at %s (%s). See you there!",
				job.Name, when, job.Location, job.MachineName)
	}
}

func (s *Service) Close() error {
	return s.redis.Close()
}
