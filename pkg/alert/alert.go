// Package alert sends operator notifications when search backends go down.
package alert

import (
	"fmt"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/soundprediction/globescope/pkg/config"
)

// Alerter defines an interface for sending alerts
type Alerter interface {
	Alert(subject, message string) error
}

// EmailAlerter implements Alerter using SMTP
type EmailAlerter struct {
	cfg config.AlertConfig
}

// NewEmailAlerter creates a new email alerter
func NewEmailAlerter(cfg config.AlertConfig) *EmailAlerter {
	return &EmailAlerter{
		cfg: cfg,
	}
}

// Alert sends an email with the given subject and message
func (a *EmailAlerter) Alert(subject, message string) error {
	if !a.cfg.Enabled {
		return nil
	}

	auth := smtp.PlainAuth("", a.cfg.Username, a.cfg.Password, a.cfg.SMTPHost)

	to := a.cfg.To
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", strings.Join(to, ","), subject, message))

	addr := fmt.Sprintf("%s:%d", a.cfg.SMTPHost, a.cfg.SMTPPort)

	err := smtp.SendMail(addr, auth, a.cfg.From, to, msg)
	if err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	return nil
}

// NoOpAlerter is a dummy alerter for when alerting is disabled
type NoOpAlerter struct{}

func (n *NoOpAlerter) Alert(subject, message string) error {
	return nil
}

// Throttled wraps an Alerter and suppresses repeats of the same subject
// within the interval. A strategy that stays down for hours should produce
// one email, not one per request.
type Throttled struct {
	next     Alerter
	interval time.Duration

	mu   sync.Mutex
	sent map[string]time.Time
}

// NewThrottled wraps next with per-subject throttling.
func NewThrottled(next Alerter, interval time.Duration) *Throttled {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Throttled{
		next:     next,
		interval: interval,
		sent:     make(map[string]time.Time),
	}
}

// Alert forwards to the wrapped alerter unless the same subject fired within
// the throttle interval.
func (t *Throttled) Alert(subject, message string) error {
	t.mu.Lock()
	last, seen := t.sent[subject]
	now := time.Now()
	if seen && now.Sub(last) < t.interval {
		t.mu.Unlock()
		return nil
	}
	t.sent[subject] = now
	t.mu.Unlock()

	return t.next.Alert(subject, message)
}
