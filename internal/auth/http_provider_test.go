package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newProvider(t *testing.T, handler http.HandlerFunc) *HTTPProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPProvider(srv.URL, "anon-key", "service-key")
}

func TestSignIn_SendsPasswordGrant(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("missing apikey header")
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "kok@example.dk" {
			t.Errorf("email not forwarded: %v", body)
		}
		_ = json.NewEncoder(w).Encode(Session{
			AccessToken: "tok",
			User:        Account{ID: "u1", Email: "kok@example.dk"},
		})
	})

	s, err := p.SignIn(context.Background(), "kok@example.dk", "hemmelig")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if s.AccessToken != "tok" || s.User.ID != "u1" {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestSignIn_BadCredentials(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "Invalid login credentials"})
	})

	_, err := p.SignIn(context.Background(), "kok@example.dk", "forkert")
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pe.Status != http.StatusBadRequest || pe.Temporary() {
		t.Fatalf("unexpected error %+v", pe)
	}
	if pe.Message != "Invalid login credentials" {
		t.Fatalf("provider message lost: %q", pe.Message)
	}
}

func TestGetUser_SendsBearer(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/user" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("bearer not forwarded: %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(Account{ID: "u1", Email: "kok@example.dk"})
	})

	a, err := p.GetUser(context.Background(), "tok")
	if err != nil || a.ID != "u1" {
		t.Fatalf("GetUser: %v %+v", err, a)
	}
}

func TestDeleteUser_UsesServiceKey(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/admin/users/u1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer service-key" {
			t.Errorf("service key not used: %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := p.DeleteUser(context.Background(), "u1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
}

func TestProviderOutageIsTemporary(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := p.ResetPassword(context.Background(), "kok@example.dk")
	var pe *ProviderError
	if !errors.As(err, &pe) || !pe.Temporary() {
		t.Fatalf("expected temporary ProviderError, got %v", err)
	}
}
