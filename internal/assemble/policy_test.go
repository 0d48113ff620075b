package assemble

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPolicyPrimarySucceeds(t *testing.T) {
	fallbackRan := false
	p := Policy{
		Primary:  func(context.Context) error { return nil },
		Fallback: func(context.Context) error { fallbackRan = true; return nil },
	}
	attempt, err := p.Run(context.Background())
	if err != nil || attempt != AttemptPrimary {
		t.Fatalf("Run = %v, %v", attempt, err)
	}
	if fallbackRan {
		t.Fatal("fallback must not run after primary success")
	}
}

func TestPolicyFallbackSucceeds(t *testing.T) {
	var notified error
	p := Policy{
		Primary:    func(context.Context) error { return errors.New("copy failed") },
		Fallback:   func(context.Context) error { return nil },
		OnFallback: func(err error) { notified = err },
	}
	attempt, err := p.Run(context.Background())
	if err != nil || attempt != AttemptFallback {
		t.Fatalf("Run = %v, %v", attempt, err)
	}
	if notified == nil || notified.Error() != "copy failed" {
		t.Fatalf("expected OnFallback with primary error, got %v", notified)
	}
}

func TestPolicyBothFail(t *testing.T) {
	encodeErr := errors.New("encode failed")
	p := Policy{
		Primary:  func(context.Context) error { return errors.New("copy failed") },
		Fallback: func(context.Context) error { return encodeErr },
	}
	attempt, err := p.Run(context.Background())
	if attempt != AttemptNone || !errors.Is(err, encodeErr) {
		t.Fatalf("Run = %v, %v", attempt, err)
	}
	if !strings.Contains(err.Error(), "copy failed") {
		t.Fatalf("expected primary cause in %v", err)
	}
}

func TestPolicyWithoutFallback(t *testing.T) {
	copyErr := errors.New("copy failed")
	attempt, err := Policy{Primary: func(context.Context) error { return copyErr }}.Run(context.Background())
	if attempt != AttemptNone || !errors.Is(err, copyErr) {
		t.Fatalf("Run = %v, %v", attempt, err)
	}
	if _, err := (Policy{}).Run(context.Background()); err == nil {
		t.Fatal("expected error for empty policy")
	}
}

func TestPolicySkipsFallbackWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{
		Primary:  func(context.Context) error { cancel(); return errors.New("killed") },
		Fallback: func(context.Context) error { t.Fatal("fallback ran after cancellation"); return nil },
	}
	if _, err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAttemptString(t *testing.T) {
	if AttemptPrimary.String() != "primary" || AttemptFallback.String() != "fallback" || AttemptNone.String() != "none" {
		t.Fatal("unexpected attempt names")
	}
}
