package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"vet-clinic-api/internal/platform/apperr"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/notify"
)

type testRepo struct {
	byID   map[uint64]Appointment
	nextID uint64
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[uint64]Appointment{}}
}

func (r *testRepo) List(ctx context.Context, status Status) ([]Appointment, error) {
	out := []Appointment{}
	for _, a := range r.byID {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) GetByID(ctx context.Context, id uint64) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, apperr.ErrRecordNotFound
	}
	return a, nil
}

func (r *testRepo) Create(ctx context.Context, a *Appointment) error {
	r.nextID++
	a.ID = r.nextID
	a.PetName = "Milo"
	a.Owner = "Rosa Díaz"
	a.ClientEmail = "rosa@correo.test"
	a.ClientPhone = "987654321"
	r.byID[a.ID] = *a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a *Appointment) error {
	if _, ok := r.byID[a.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	r.byID[a.ID] = *a
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) MarkAlertSent(ctx context.Context, id uint64, ch Channel, at time.Time) error {
	a, ok := r.byID[id]
	if !ok {
		return apperr.ErrRecordNotFound
	}
	switch ch {
	case ChannelEmail:
		a.EmailAlertSent = true
	case ChannelWhatsApp:
		a.WhatsAppAlertSent = true
	}
	a.UpdatedAt = at
	r.byID[id] = a
	return nil
}

type allowAll struct{}

func (allowAll) Exists(ctx context.Context, table, column string, value any, ignoreID uint64) (bool, error) {
	return true, nil
}

type owners map[uint64]uint64

func (o owners) OwnerOf(ctx context.Context, petID uint64) (uint64, error) {
	id, ok := o[petID]
	if !ok {
		return 0, apperr.NotFound("Mascota no encontrada")
	}
	return id, nil
}

type fakeSender struct {
	err  error
	sent []notify.Message
}

func (f *fakeSender) Send(ctx context.Context, msg notify.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestService(repo *testRepo, email, whatsapp notify.Sender) *Service {
	svc := NewService(repo, validation.New(allowAll{}), owners{7: 3}, email, whatsapp)
	svc.now = func() time.Time { return time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func createOne(t *testing.T, svc *Service) Appointment {
	t.Helper()
	a, err := svc.Create(context.Background(), CreateInput{
		PetID:  7,
		Date:   "2026-10-20 10:30:00",
		Reason: "Vacunación anual",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return a
}

func TestCreateResolvesOwnerAndStartsPending(t *testing.T) {
	svc := newTestService(newTestRepo(), nil, nil)
	a := createOne(t, svc)

	if a.ClientID != 3 {
		t.Fatalf("expected client 3 from pet owner, got %d", a.ClientID)
	}
	if a.Status != StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}
	if a.Date.Format(DateTimeLayout) != "2026-10-20 10:30:00" {
		t.Fatalf("unexpected date %s", a.Date)
	}
}

func TestUpdateAllowsAnyStatusChange(t *testing.T) {
	svc := newTestService(newTestRepo(), nil, nil)
	a := createOne(t, svc)
	ctx := context.Background()

	for _, st := range []string{"cancelled", "confirmed", "pending"} {
		got, err := svc.Update(ctx, a.ID, UpdateInput{Date: "2026-10-21", Reason: "Control", Status: st})
		if err != nil {
			t.Fatalf("update to %s: %v", st, err)
		}
		if string(got.Status) != st {
			t.Fatalf("expected %s, got %s", st, got.Status)
		}
	}

	_, err := svc.Update(ctx, a.ID, UpdateInput{Date: "2026-10-21", Reason: "Control", Status: "archived"})
	var verrs validation.Errors
	if !errors.As(err, &verrs) || len(verrs["status"]) == 0 {
		t.Fatalf("expected status validation error, got %v", err)
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newTestRepo(), nil, nil)
	createOne(t, svc)

	if _, err := svc.List(context.Background(), "archived"); err == nil {
		t.Fatalf("expected error for unknown status filter")
	}
	items, err := svc.List(context.Background(), "pending")
	if err != nil || len(items) != 1 {
		t.Fatalf("expected 1 pending appointment, got %d err=%v", len(items), err)
	}
}

func TestEmailAlert(t *testing.T) {
	email := &fakeSender{}
	repo := newTestRepo()
	svc := newTestService(repo, email, nil)
	a := createOne(t, svc)

	got, err := svc.SendEmailAlert(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("send email alert: %v", err)
	}
	if !got.EmailAlertSent || !repo.byID[a.ID].EmailAlertSent {
		t.Fatalf("expected email alert marked as sent")
	}
	if len(email.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(email.sent))
	}
	msg := email.sent[0]
	if msg.To != "rosa@correo.test" || !strings.Contains(msg.Subject, "Milo") || !strings.Contains(msg.Body, "20/10/2026 10:30") {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestAlertErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("channel disabled", func(t *testing.T) {
		svc := newTestService(newTestRepo(), nil, nil)
		a := createOne(t, svc)
		if _, err := svc.SendEmailAlert(ctx, a.ID); !errors.Is(err, ErrEmailDisabled) {
			t.Fatalf("expected ErrEmailDisabled, got %v", err)
		}
		if _, err := svc.SendWhatsAppAlert(ctx, a.ID); !errors.Is(err, ErrWhatsAppDisabled) {
			t.Fatalf("expected ErrWhatsAppDisabled, got %v", err)
		}
	})

	t.Run("client without email", func(t *testing.T) {
		repo := newTestRepo()
		svc := newTestService(repo, &fakeSender{}, nil)
		a := createOne(t, svc)
		stored := repo.byID[a.ID]
		stored.ClientEmail = ""
		repo.byID[a.ID] = stored

		if _, err := svc.SendEmailAlert(ctx, a.ID); !errors.Is(err, ErrNoEmail) {
			t.Fatalf("expected ErrNoEmail, got %v", err)
		}
	})

	t.Run("invalid phone", func(t *testing.T) {
		wa := &fakeSender{err: fmt.Errorf("%w: not a number", notify.ErrInvalidRecipient)}
		svc := newTestService(newTestRepo(), nil, wa)
		a := createOne(t, svc)

		_, err := svc.SendWhatsAppAlert(ctx, a.ID)
		if !errors.Is(err, ErrNoPhone) {
			t.Fatalf("expected ErrNoPhone, got %v", err)
		}
		if e, ok := apperr.As(err); !ok || e.Kind != apperr.KindConflict {
			t.Fatalf("expected conflict kind, got %v", err)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		wa := &fakeSender{err: errors.New("502 bad gateway")}
		svc := newTestService(newTestRepo(), nil, wa)
		a := createOne(t, svc)

		_, err := svc.SendWhatsAppAlert(ctx, a.ID)
		if err == nil {
			t.Fatalf("expected error")
		}
		if _, ok := apperr.As(err); ok {
			t.Fatalf("expected internal error, got app error %v", err)
		}
	})

	t.Run("unknown appointment", func(t *testing.T) {
		svc := newTestService(newTestRepo(), &fakeSender{}, nil)
		if _, err := svc.SendEmailAlert(ctx, 99); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
