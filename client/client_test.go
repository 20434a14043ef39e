package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginStoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"token":"tok-123","role":"DEALER_MANAGER","userId":4,"dealerId":2}}`))
	})
	var gotAuth string
	mux.HandleFunc("GET /api/quote", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":{"items":[],"total":0}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	session := &Session{}
	api := New(srv.URL, session)
	if err := api.Login(context.Background(), "manager@dealer.test", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token != "tok-123" || session.Role != "DEALER_MANAGER" {
		t.Fatalf("session = %+v", session)
	}
	if _, err := api.ListQuotes(context.Background(), 1, 20); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"invalid_credentials"}`))
	}))
	defer srv.Close()

	session := &Session{}
	api := New(srv.URL, session)
	if err := api.Login(context.Background(), "x@y.test", "bad"); err == nil {
		t.Fatal("expected login failure")
	}
	if session.Token != "" {
		t.Fatalf("token stored on failed login: %q", session.Token)
	}
}
