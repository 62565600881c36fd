package email

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"vet-clinic-api/internal/ports/notify"

	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
	wait time.Duration
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	time.Sleep(f.wait)
	f.sent = append(f.sent, m...)
	return f.err
}

func newTestSender(d dialer) *Sender {
	return &Sender{from: "clinica@example.com", d: d, timeout: time.Second}
}

func TestSendBuildsMessage(t *testing.T) {
	d := &fakeDialer{}
	s := newTestSender(d)

	err := s.Send(context.Background(), notify.Message{To: "ana@example.com", Subject: "Recordatorio", Body: "Hola Ana"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(d.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(d.sent))
	}

	var buf bytes.Buffer
	if _, err := d.sent[0].WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw := buf.String()
	for _, want := range []string{"To: ana@example.com", "Subject: Recordatorio", "Hola Ana"} {
		if !strings.Contains(raw, want) {
			t.Fatalf("expected %q in message:\n%s", want, raw)
		}
	}
}

func TestSendRejectsInvalidRecipient(t *testing.T) {
	s := newTestSender(&fakeDialer{})
	err := s.Send(context.Background(), notify.Message{To: "no-es-correo"})
	if !errors.Is(err, notify.ErrInvalidRecipient) {
		t.Fatalf("expected ErrInvalidRecipient, got %v", err)
	}
}

func TestSendHonoursContext(t *testing.T) {
	s := newTestSender(&fakeDialer{wait: 200 * time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := s.Send(ctx, notify.Message{To: "ana@example.com"}); err == nil {
		t.Fatalf("expected timeout error")
	}
}
