package contract

import "errors"

var (
	// Domain failures, surfaced to the user as actionable messages.
	ErrNoSuppliersFound     = errors.New("no suppliers found")
	ErrNoActiveQuote        = errors.New("no active quote")
	ErrInvalidCompanyNumber = errors.New("invalid company number")
	ErrPlacementRejected    = errors.New("order placement rejected")

	// Provider pipeline failures, recovered locally by the fallback chain.
	ErrNoCredentials     = errors.New("no provider credentials configured")
	ErrProviderExhausted = errors.New("all provider credentials exhausted")

	// Request validation failures, caught at the router boundary.
	ErrValidation     = errors.New("validation failed")
	ErrInvalidSession = errors.New("session id is empty")
	ErrInvalidMessage = errors.New("message text is empty")
)
