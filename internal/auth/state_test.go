package auth

import (
	"testing"
	"time"
)

func TestStateSignerRoundTrip(t *testing.T) {
	signer := NewStateSigner("test-secret", time.Minute)

	state, err := signer.Sign("google")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	provider, err := signer.Verify(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != "google" {
		t.Errorf("expected provider google, got %q", provider)
	}
}

func TestStateSignerRejectsTampering(t *testing.T) {
	signer := NewStateSigner("test-secret", time.Minute)

	state, err := signer.Sign("google")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := signer.Verify(state + "x"); err == nil {
		t.Error("expected tampered state to fail verification")
	}
	if _, err := signer.Verify(""); err == nil {
		t.Error("expected empty state to fail verification")
	}
}

func TestStateSignerRejectsWrongSecret(t *testing.T) {
	state, err := NewStateSigner("secret-a", time.Minute).Sign("google")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewStateSigner("secret-b", time.Minute).Verify(state); err == nil {
		t.Error("expected verification with a different secret to fail")
	}
}

func TestStateSignerRejectsExpired(t *testing.T) {
	signer := NewStateSigner("test-secret", time.Nanosecond)

	state, err := signer.Sign("google")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := signer.Verify(state); err == nil {
		t.Error("expected expired state to fail verification")
	}
}
