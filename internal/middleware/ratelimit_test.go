// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d denied within limit", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("request over limit allowed")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	if !rl.allow("1.1.1.1") {
		t.Fatal("first client denied")
	}
	if !rl.allow("2.2.2.2") {
		t.Error("second client denied because of first client's usage")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)
	defer rl.Stop()

	if !rl.allow("5.5.5.5") {
		t.Fatal("first request denied")
	}
	if rl.allow("5.5.5.5") {
		t.Fatal("second request allowed inside window")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.allow("5.5.5.5") {
		t.Error("request denied after window expired")
	}
}

func TestRateLimiterMiddlewareReturns429(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	r := httptest.NewRequest(http.MethodPost, "/api/requests", nil)
	r.RemoteAddr = "9.9.9.9:1234"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("first request status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{name: "remote addr", remote: "10.0.0.1:5000", want: "10.0.0.1"},
		{name: "x-forwarded-for single", remote: "10.0.0.1:5000", xff: "203.0.113.9", want: "203.0.113.9"},
		{name: "x-forwarded-for chain", remote: "10.0.0.1:5000", xff: "203.0.113.9, 10.0.0.2", want: "203.0.113.9"},
		{name: "x-real-ip", remote: "10.0.0.1:5000", xri: "203.0.113.7", want: "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(r); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
