package server

import (
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestRateLimiterWindow(t *testing.T) {
	c := &clock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	l := newRateLimiter(2, time.Minute, c.now)

	if !l.allow("a") || !l.allow("a") {
		t.Fatal("expected the first two requests to pass")
	}
	if l.allow("a") {
		t.Fatal("expected the third request to be limited")
	}
	if !l.allow("b") {
		t.Error("clients must not share a quota")
	}

	c.t = c.t.Add(61 * time.Second)
	if !l.allow("a") {
		t.Error("expected the window to slide")
	}
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	c := &clock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	l := newRateLimiter(5, time.Minute, c.now)

	for _, client := range []string{"a", "b", "c"} {
		l.allow(client)
	}
	c.t = c.t.Add(30 * time.Second)
	l.allow("c")

	c.t = c.t.Add(45 * time.Second)
	l.allow("d")

	if len(l.hits) != 2 {
		t.Fatalf("expected idle clients to be dropped, have %v", l.hits)
	}
	if got := len(l.hits["c"]); got != 1 {
		t.Errorf("expected one live hit for c, got %d", got)
	}
}

func TestClientHost(t *testing.T) {
	for addr, want := range map[string]string{
		"192.0.2.1:1234":   "192.0.2.1",
		"[2001:db8::1]:80": "2001:db8::1",
		"203.0.113.5":      "203.0.113.5",
	} {
		if got := clientHost(addr); got != want {
			t.Errorf("clientHost(%q) = %q, want %q", addr, got, want)
		}
	}
}
