// Package notify delivers best-effort notifications about new contact
// submissions. Delivery happens after the contact is stored and its outcome
// is only logged; it never reaches the HTTP caller.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/technova/portfolio-api/internal/config"
	"github.com/technova/portfolio-api/internal/contact"
	"github.com/technova/portfolio-api/pkg/logger"
	"github.com/technova/portfolio-api/pkg/metrics"
)

// Sender delivers one notification.
type Sender interface {
	Send(ctx context.Context, c contact.Contact) error
}

// Dispatcher runs each Send on its own goroutine.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	wg      sync.WaitGroup
}

const defaultTimeout = 15 * time.Second

// NewDispatcher returns a dispatcher for sender. A nil sender (transport not
// configured) makes Dispatch a silent no-op.
func NewDispatcher(sender Sender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{sender: sender, timeout: timeout}
}

// FromConfig builds the dispatcher for the SMTP settings in cfg. Missing
// settings yield a disabled dispatcher.
func FromConfig(cfg config.SMTPConfig) *Dispatcher {
	if s := NewSMTPSender(cfg); s != nil {
		return NewDispatcher(s, cfg.Timeout)
	}
	return NewDispatcher(nil, cfg.Timeout)
}

// Enabled reports whether a transport is configured.
func (d *Dispatcher) Enabled() bool { return d.sender != nil }

// Dispatch schedules a notification for c and returns immediately.
func (d *Dispatcher) Dispatch(c contact.Contact) {
	if d.sender == nil {
		metrics.Notifications.WithLabelValues("skipped").Inc()
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				metrics.Notifications.WithLabelValues("failed").Inc()
				logger.Errorf("notify: panic sending contact %s: %v", c.ID, r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.sender.Send(ctx, c); err != nil {
			metrics.Notifications.WithLabelValues("failed").Inc()
			logger.Errorf("notify: failed sending email for contact %s: %v", c.ID, err)
			return
		}
		metrics.Notifications.WithLabelValues("sent").Inc()
		logger.Debugf("notify: email sent for contact %s", c.ID)
	}()
}

// Wait blocks until every in-flight notification finished.
func (d *Dispatcher) Wait() { d.wg.Wait() }
