package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("path = %s, want /api/v1/auth/login", r.URL.Path)
		}
		var req LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "t@example.com" {
			t.Errorf("email = %q", req.Email)
		}
		_ = json.NewEncoder(w).Encode(AuthResponse{
			AccessToken:  "token-abc",
			RefreshToken: "refresh-xyz",
			User:         &User{ID: 7, Email: req.Email, Tier: "core"},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	resp, err := c.Auth().Login(context.Background(), LoginRequest{Email: "t@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.User == nil || resp.User.ID != 7 {
		t.Errorf("User = %+v, want ID 7", resp.User)
	}
	if c.GetToken() != "token-abc" {
		t.Errorf("token = %q, want token-abc", c.GetToken())
	}
}

func TestAuthorizedRequestsCarryBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("Authorization = %q, want Bearer token-abc", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"sites": []Site{{ID: "s1"}}})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	c.SetToken("token-abc")

	sites, err := c.Sites().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sites) != 1 || sites[0].ID != "s1" {
		t.Errorf("sites = %+v", sites)
	}
}

func TestErrorResponsesBecomeAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":    "Monthly limit reached for audits",
			"response": "You've reached your plan's monthly limit. Upgrade to continue.",
		})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Audits().Run(context.Background(), "site-1")
	if err == nil {
		t.Fatal("Run() error = nil, want APIError")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if !apiErr.IsPlanLimited() {
		t.Errorf("IsPlanLimited() = false, status %d", apiErr.StatusCode)
	}
	if apiErr.Response == "" {
		t.Error("Response message not decoded")
	}
}

func TestNonJSONErrorStillFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Plans().List(context.Background())
	if err == nil {
		t.Fatal("List() error = nil, want failure for non-JSON error body")
	}
}
