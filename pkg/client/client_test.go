package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoginInstallsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "jo@example.com" {
			t.Fatalf("unexpected email: %q", body["email"])
		}
		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken: "jwt-123",
			User:        &UserInfo{Email: "jo@example.com", Role: "admin"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Login(context.Background(), "jo@example.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.AccessToken != "jwt-123" {
		t.Fatalf("unexpected token: %q", resp.AccessToken)
	}
	if c.token != "jwt-123" {
		t.Fatal("login should install the access token")
	}
}

func TestBearerHeaderOnAuthenticatedCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer jwt-123" {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		json.NewEncoder(w).Encode([]UserInfo{{Email: "a@example.com"}})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("jwt-123")
	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 1 || users[0].Email != "a@example.com" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestRenewComputesAmount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["amount"] != 3*MonthlyPrice {
			t.Fatalf("amount = %v, want %v", body["amount"], 3*MonthlyPrice)
		}
		if body["idempotency_key"] != "key-1" {
			t.Fatalf("missing idempotency key: %v", body)
		}
		json.NewEncoder(w).Encode(RenewResult{Renewal: &Renewal{Months: 3}})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("jwt")
	result, err := c.Renew(context.Background(), 3, "key-1")
	if err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	if result.Renewal.Months != 3 {
		t.Fatalf("unexpected result: %+v", result.Renewal)
	}
}

func TestRenewRejectsNonPositiveDuration(t *testing.T) {
	c := New("http://unused")
	if _, err := c.Renew(context.Background(), 0, "key"); err == nil {
		t.Fatal("expected error for zero months")
	}
	if _, err := c.Renew(context.Background(), -2, "key"); err == nil {
		t.Fatal("expected error for negative months")
	}
}

func TestVisitorsQueryString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "25" || q.Get("search") != "billing" || q.Get("fromDate") != "2026-01-01" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(VisitorPage{Total: 1, Page: 2, Limit: 25})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("jwt")
	page, err := c.Visitors(context.Background(), "acme", 2, 25, "billing", "2026-01-01")
	if err != nil {
		t.Fatalf("visitors failed: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestAPIErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "amount mismatch"})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("jwt")
	_, err := c.Renew(context.Background(), 1, "key")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); !strings.Contains(got, "amount mismatch") {
		t.Fatalf("error should carry the server message, got %q", got)
	}
}
