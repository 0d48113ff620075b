package assemble

import (
	"context"
	"errors"
	"fmt"
)

// Attempt identifies which step of a Policy produced the result.
type Attempt int

const (
	AttemptNone Attempt = iota
	AttemptPrimary
	AttemptFallback
)

func (a Attempt) String() string {
	switch a {
	case AttemptPrimary:
		return "primary"
	case AttemptFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Step is one way of producing an artifact.
type Step func(ctx context.Context) error

// Policy runs Primary and, only if it fails, Fallback once. A nil Fallback
// makes the primary failure final.
type Policy struct {
	Primary  Step
	Fallback Step
	// OnFallback is called with the primary error before the fallback runs.
	OnFallback func(err error)
}

// Run executes the policy and reports which attempt succeeded. When both
// attempts fail the returned error carries both causes.
func (p Policy) Run(ctx context.Context) (Attempt, error) {
	if p.Primary == nil {
		return AttemptNone, errors.New("policy has no primary step")
	}
	primaryErr := p.Primary(ctx)
	if primaryErr == nil {
		return AttemptPrimary, nil
	}
	if p.Fallback == nil {
		return AttemptNone, primaryErr
	}
	if err := ctx.Err(); err != nil {
		return AttemptNone, err
	}
	if p.OnFallback != nil {
		p.OnFallback(primaryErr)
	}
	if err := p.Fallback(ctx); err != nil {
		return AttemptNone, fmt.Errorf("%w (after primary failure: %v)", err, primaryErr)
	}
	return AttemptFallback, nil
}
