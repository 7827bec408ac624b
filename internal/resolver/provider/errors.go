package provider

import "fmt"

// Error wraps a provider failure with the tier it occurred in. The
// orchestrator absorbs these at the tier boundary: a failing tier
// contributes nothing and the search continues.
type Error struct {
	Tier string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Tier, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with its originating tier.
func NewError(tier string, err error) *Error {
	return &Error{Tier: tier, Err: err}
}
