package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"rental/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationCautionSettled   NotificationType = "CAUTION_SETTLED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Subject     string
	Message     string
	CreatedAt   time.Time
}

// MailSender delivers notification emails.
type MailSender interface {
	Send(ctx context.Context, subject, body string) error
}

// SMTPMailSender sends mail through an SMTP relay.
type SMTPMailSender struct {
	host string
	port int
	user string
	pass string
	from string
	to   string
}

// NewSMTPMailSender creates a new SMTPMailSender.
func NewSMTPMailSender(host string, port int, user, pass, from, to string) *SMTPMailSender {
	return &SMTPMailSender{host: host, port: port, user: user, pass: pass, from: from, to: to}
}

// Send delivers the message over SMTP.
func (s *SMTPMailSender) Send(ctx context.Context, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification mail: %w", err)
	}
	return nil
}

// NotificationService handles notification delivery. Delivery failures are
// logged and never propagate into lifecycle transitions.
type NotificationService struct {
	mail MailSender // nil means log-only
	log  *logrus.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(mail MailSender, log *logrus.Logger) *NotificationService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NotificationService{mail: mail, log: log}
}

// NotifyBookingConfirmed notifies the customer that the booking is confirmed.
func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return s.send(ctx, Notification{
		Type:        NotificationBookingConfirmed,
		RecipientID: booking.CustomerID,
		Subject:     "Booking confirmed",
		Message: fmt.Sprintf("Your booking %s from %s to %s is confirmed. Total: %.2f",
			booking.ID, booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"), booking.TotalPrice),
		CreatedAt: time.Now(),
	})
}

// NotifyBookingCancelled notifies the customer that the booking was cancelled.
func (s *NotificationService) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking, reason string) error {
	return s.send(ctx, Notification{
		Type:        NotificationBookingCancelled,
		RecipientID: booking.CustomerID,
		Subject:     "Booking cancelled",
		Message:     fmt.Sprintf("Your booking %s has been cancelled. Reason: %s", booking.ID, reason),
		CreatedAt:   time.Now(),
	})
}

// NotifyCautionSettled notifies the customer about the deposit settlement.
func (s *NotificationService) NotifyCautionSettled(ctx context.Context, caution *domain.Caution, releasedAmount float64) error {
	message := fmt.Sprintf("Your deposit of %.2f was released in full.", caution.Amount)
	if caution.ChargedAmount > 0 {
		message = fmt.Sprintf("%.2f of your %.2f deposit was charged for damages; %.2f will be released.",
			caution.ChargedAmount, caution.Amount, releasedAmount)
	}

	return s.send(ctx, Notification{
		Type:      NotificationCautionSettled,
		Subject:   "Deposit settled",
		Message:   message,
		CreatedAt: time.Now(),
	})
}

func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	s.log.WithFields(logrus.Fields{
		"type":      notification.Type,
		"recipient": notification.RecipientID,
		"subject":   notification.Subject,
	}).Info(notification.Message)

	if s.mail == nil {
		return nil
	}

	if err := s.mail.Send(ctx, notification.Subject, notification.Message); err != nil {
		s.log.WithError(err).Warn("notification mail delivery failed")
	}
	return nil
}
