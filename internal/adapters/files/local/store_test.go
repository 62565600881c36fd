package local

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestPutAndDelete(t *testing.T) {
	ctx := context.Background()
	s := New(afero.NewMemMapFs(), "/storage")

	url, err := s.Put(ctx, "pet_images", "a.png", strings.NewReader("png"), 3, "image/png")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if url != "/storage/pet_images/a.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if !s.Exists(url) {
		t.Fatalf("expected blob to exist")
	}

	if err := s.Delete(ctx, "http://localhost:8080"+url); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Exists(url) {
		t.Fatalf("expected blob to be gone")
	}
	if err := s.Delete(ctx, url); err != nil {
		t.Fatalf("deleting a missing blob should not fail: %v", err)
	}
}

func TestRejectsForeignAndTraversalURLs(t *testing.T) {
	ctx := context.Background()
	s := New(afero.NewMemMapFs(), "/storage")

	for _, u := range []string{"/other/pet_images/a.png", "/storage/../etc/passwd", "https://cdn.example.com/x.png"} {
		if err := s.Delete(ctx, u); err == nil {
			t.Fatalf("expected error for %q", u)
		}
	}
	if _, err := s.Put(ctx, "pet_images", "../x", strings.NewReader(""), 0, ""); err == nil {
		t.Fatalf("expected invalid name error")
	}
}

func TestHandlerServesFiles(t *testing.T) {
	s := New(afero.NewMemMapFs(), "/storage")
	url, err := s.Put(context.Background(), "company_logos", "logo.txt", strings.NewReader("hola"), 4, "text/plain")
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if string(body) != "hola" {
		t.Fatalf("unexpected body %q", body)
	}
}
