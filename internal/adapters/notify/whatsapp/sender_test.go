package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vet-clinic-api/internal/platform/httpclient"
	"vet-clinic-api/internal/ports/notify"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		raw    string
		region string
		want   string
	}{
		{"987 654 321", "PE", "+51987654321"},
		{"+51 987654321", "", "+51987654321"},
		{"(650) 253-0000", "US", "+16502530000"},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.raw, tc.region)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.raw, tc.want, got)
		}
	}

	for _, raw := range []string{"", "abc", "123"} {
		if _, err := NormalizePhone(raw, "PE"); !errors.Is(err, notify.ErrInvalidRecipient) {
			t.Fatalf("%q: expected ErrInvalidRecipient, got %v", raw, err)
		}
	}
}

func TestSendPostsCloudAPIMessage(t *testing.T) {
	var got messageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/123/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing bearer token")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	client, err := httpclient.New(httpclient.Options{BaseURL: srv.URL, Token: "secret"})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	s, err := New(client, Options{PhoneNumberID: "123", DefaultRegion: "PE"})
	if err != nil {
		t.Fatalf("sender: %v", err)
	}

	if err := s.Send(context.Background(), notify.Message{To: "987654321", Body: "Hola"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.To != "51987654321" || got.Type != "text" || got.Text.Body != "Hola" || got.MessagingProduct != "whatsapp" {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestSendSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad token"}}`))
	}))
	defer srv.Close()

	client, _ := httpclient.New(httpclient.Options{BaseURL: srv.URL})
	s, _ := New(client, Options{PhoneNumberID: "123", DefaultRegion: "PE"})

	err := s.Send(context.Background(), notify.Message{To: "987654321", Body: "Hola"})
	var herr *httpclient.HTTPError
	if !errors.As(err, &herr) || herr.Message != "bad token" {
		t.Fatalf("expected HTTPError with message, got %v", err)
	}
}
