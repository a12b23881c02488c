package introspect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption/internal/ports/auth"
)

func newIAM(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath || r.Header.Get("X-Api-Key") != "k" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var req verifyRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch req.Token {
		case "good":
			_ = json.NewEncoder(w).Encode(map[string]string{"user_id": "user-1"})
		case "empty":
			_ = json.NewEncoder(w).Encode(map[string]string{"user_id": " "})
		case "boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
}

func TestVerifier_Verify(t *testing.T) {
	srv := newIAM(t)
	defer srv.Close()

	v, err := NewVerifier(Config{BaseURL: srv.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	c, err := v.Verify(context.Background(), "good")
	if err != nil || c.UserID != "user-1" {
		t.Fatalf("expected user-1, got %+v err=%v", c, err)
	}

	for _, tok := range []string{"bad", "empty", ""} {
		if _, err := v.Verify(context.Background(), tok); !errors.Is(err, auth.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}

	_, err = v.Verify(context.Background(), "boom")
	if err == nil || errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestNewVerifier_RequiresBaseURL(t *testing.T) {
	if _, err := NewVerifier(Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
