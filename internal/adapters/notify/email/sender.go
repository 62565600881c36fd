// Package email envía notificaciones por SMTP con gomail.
package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"vet-clinic-api/internal/ports/notify"

	"gopkg.in/gomail.v2"
)

const defaultTimeout = 15 * time.Second

type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// dialer es la parte de gomail.Dialer que se usa; en tests se reemplaza.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Sender struct {
	from    string
	d       dialer
	timeout time.Duration
}

func New(opts Options) (*Sender, error) {
	if strings.TrimSpace(opts.Host) == "" {
		return nil, fmt.Errorf("email: host is required")
	}
	if _, err := mail.ParseAddress(opts.From); err != nil {
		return nil, fmt.Errorf("email: invalid from address: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Sender{
		from:    opts.From,
		d:       gomail.NewDialer(opts.Host, opts.Port, opts.Username, opts.Password),
		timeout: timeout,
	}, nil
}

func (s *Sender) Send(ctx context.Context, msg notify.Message) error {
	to, err := mail.ParseAddress(strings.TrimSpace(msg.To))
	if err != nil {
		return fmt.Errorf("%w: %v", notify.ErrInvalidRecipient, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to.Address)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	// gomail no recibe contexto: se corta la espera, no el envío en curso.
	done := make(chan error, 1)
	go func() { done <- s.d.DialAndSend(m) }()

	wait := s.timeout
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 && d < wait {
			wait = d
		}
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return context.DeadlineExceeded
	}
}
