package jwtauth

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"vet-clinic-api/internal/ports/auth"
)

const secret = "test-secret-test-secret-test-secret!"

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestManager(t *testing.T) (*Manager, *clock) {
	t.Helper()
	m, err := NewManager(Options{
		Secret:     secret,
		Issuer:     "vet-test",
		TTL:        time.Hour,
		RefreshTTL: 48 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	c := &clock{t: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	m.now = c.now
	return m, c
}

func TestIssueVerify(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	tok, err := m.Issue(ctx, 42, "vet@clinic.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if tok.Type != "bearer" || tok.ExpiresIn != 3600 {
		t.Fatalf("unexpected token meta: %+v", tok)
	}

	c, err := m.Verify(ctx, tok.Value)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if c.UserID != 42 || c.Email != "vet@clinic.com" || c.TokenID == "" {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestVerify_Expired(t *testing.T) {
	m, clk := newTestManager(t)
	ctx := context.Background()

	tok, _ := m.Issue(ctx, 1, "a@b.com")
	clk.t = clk.t.Add(time.Hour + time.Second)

	if _, err := m.Verify(ctx, tok.Value); !errors.Is(err, auth.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_Revoked(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	tok, _ := m.Issue(ctx, 1, "a@b.com")
	c, err := m.Verify(ctx, tok.Value)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := m.Revoke(ctx, c); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := m.Verify(ctx, tok.Value); !errors.Is(err, auth.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestVerify_WrongSecretOrGarbage(t *testing.T) {
	m, _ := newTestManager(t)
	other, err := NewManager(Options{Secret: "another-secret-another-secret-1234", Issuer: "vet-test", TTL: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	other.now = m.now

	tok, _ := other.Issue(context.Background(), 1, "a@b.com")
	for _, raw := range []string{tok.Value, "not-a-token", ""} {
		if _, err := m.Verify(context.Background(), raw); !errors.Is(err, auth.ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", raw, err)
		}
	}
}

func TestRefresh_WithinWindow(t *testing.T) {
	m, clk := newTestManager(t)
	ctx := context.Background()

	old, _ := m.Issue(ctx, 7, "a@b.com")

	// Vencido pero dentro de la ventana de refresh.
	clk.t = clk.t.Add(3 * time.Hour)

	next, c, err := m.Refresh(ctx, old.Value)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if c.UserID != 7 {
		t.Fatalf("unexpected claims: %+v", c)
	}
	if _, err := m.Verify(ctx, next.Value); err != nil {
		t.Fatalf("new token should verify: %v", err)
	}

	// El viejo ya no se puede reutilizar.
	if _, _, err := m.Refresh(ctx, old.Value); !errors.Is(err, auth.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked on second refresh, got %v", err)
	}
}

func TestRefresh_OutsideWindow(t *testing.T) {
	m, clk := newTestManager(t)
	ctx := context.Background()

	old, _ := m.Issue(ctx, 7, "a@b.com")
	clk.t = clk.t.Add(49 * time.Hour)

	if _, _, err := m.Refresh(ctx, old.Value); !errors.Is(err, auth.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestMemoryDenylist_Expires(t *testing.T) {
	d := NewMemoryDenylist()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	ctx := context.Background()

	_ = d.Add(ctx, "jti-1", time.Minute)
	if ok, _ := d.Contains(ctx, "jti-1"); !ok {
		t.Fatalf("expected jti-1 revoked")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := d.Contains(ctx, "jti-1"); ok {
		t.Fatalf("expected jti-1 expired")
	}
}

func TestRedisDenylist(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()

	rdb, err := OpenRedis(ctx, addr, "", 0)
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	defer rdb.Close()

	d := NewRedisDenylist(rdb)
	jti := "test-" + time.Now().Format(time.RFC3339Nano)
	if err := d.Add(ctx, jti, time.Minute); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if ok, err := d.Contains(ctx, jti); err != nil || !ok {
		t.Fatalf("expected revoked, got %v %v", ok, err)
	}
}
