package mcxgo

import "errors"

// Error taxonomy (§7). Mie-side failures wrap one of these with fmt.Errorf("...: %w", ErrX)
// so callers can errors.Is against a stable sentinel while still getting a readable message.
var (
	ErrInvalidInput      = errors.New("mcxgo: invalid input")
	ErrUnvalidated       = errors.New("mcxgo: parameter outside validated range")
	ErrConvergence       = errors.New("mcxgo: recurrence failed to converge")
	ErrResourceExhausted = errors.New("mcxgo: resource exhausted")
)
