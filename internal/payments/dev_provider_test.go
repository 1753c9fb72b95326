package payments

import (
	"context"
	"testing"
)

func TestDevProvider_RoundTrip(t *testing.T) {
	p := NewDevProvider()

	ref, redirect, err := p.CreateSession(context.Background(), 2500, "http://localhost/ok", "http://localhost/cancel")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if redirect != "http://localhost/ok" {
		t.Fatalf("expected redirect to successURL, got %q", redirect)
	}

	amount, paid, err := p.LookupSession(context.Background(), ref)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !paid || amount != 2500 {
		t.Fatalf("expected paid session of 2500, got paid=%v amount=%d", paid, amount)
	}

	if _, paid, _ := p.LookupSession(context.Background(), "unknown"); paid {
		t.Fatalf("unknown ref must not be paid")
	}
}
