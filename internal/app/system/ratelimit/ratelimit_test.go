package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowAndRemaining(t *testing.T) {
	l := New(2, time.Minute)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two hits should be allowed")
	}
	if l.Allow("a") {
		t.Error("third hit should be blocked")
	}
	if got := l.Remaining("a"); got != 0 {
		t.Errorf("Remaining(a): got %d, want 0", got)
	}
	if got := l.Remaining("b"); got != 2 {
		t.Errorf("Remaining(b): got %d, want 2", got)
	}

	l.Reset("a")
	if !l.Allow("a") {
		t.Error("hit after Reset should be allowed")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(1, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("k") {
		t.Fatal("first hit should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("second hit in window should be blocked")
	}

	now = now.Add(2 * time.Minute)
	if !l.Allow("k") {
		t.Error("hit in a new window should be allowed")
	}

	now = now.Add(2 * time.Minute)
	if n := l.Sweep(); n != 1 {
		t.Errorf("Sweep: got %d, want 1", n)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{"forwarded", "203.0.113.7, 10.0.0.1", "", "10.0.0.1:1234", "203.0.113.7"},
		{"real ip", "", "198.51.100.2", "10.0.0.1:1234", "198.51.100.2"},
		{"remote addr", "", "", "192.0.2.9:5555", "192.0.2.9"},
		{"remote without port", "", "", "192.0.2.9", "192.0.2.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/auth/login", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginLimiter_PerUsername(t *testing.T) {
	ll := NewLoginLimiter(2, time.Minute)

	r1 := httptest.NewRequest("POST", "/auth/login", nil)
	r1.RemoteAddr = "192.0.2.1:1000"
	r2 := httptest.NewRequest("POST", "/auth/login", nil)
	r2.RemoteAddr = "192.0.2.2:1000"

	if ok, _ := ll.Check(r1, "Alice"); !ok {
		t.Fatal("first attempt should pass")
	}
	if ok, _ := ll.Check(r2, "alice"); !ok {
		t.Fatal("second attempt should pass")
	}
	ok, reason := ll.Check(r2, " ALICE ")
	if ok {
		t.Fatal("third attempt for the same user should be blocked")
	}
	if reason == "" {
		t.Error("expected a reason")
	}

	ll.ResetUser("alice")
	r3 := httptest.NewRequest("POST", "/auth/login", nil)
	r3.RemoteAddr = "192.0.2.3:1000"
	if ok, _ := ll.Check(r3, "alice"); !ok {
		t.Error("attempt after ResetUser should pass")
	}
}

func TestLoginLimiter_PerIP(t *testing.T) {
	ll := NewLoginLimiter(1, time.Minute)
	r := httptest.NewRequest("POST", "/auth/login", nil)
	r.RemoteAddr = "192.0.2.1:1000"

	if ok, _ := ll.Check(r, "a"); !ok {
		t.Fatal("first attempt should pass")
	}
	if ok, _ := ll.Check(r, "b"); ok {
		t.Error("second attempt from the same IP should be blocked")
	}
}
