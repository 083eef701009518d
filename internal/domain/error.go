package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrUnknownTenant       = errors.New("unknown bot key")
	ErrNoAccess            = errors.New("chat is not whitelisted")
	ErrAmountOutOfRange    = errors.New("amount out of range")
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// Payment callback gate errors. The HTTP layer acknowledges the caller
	// regardless; these are surfaced only through logs and metrics.
	ErrMissingSignature = errors.New("callback signature missing")
	ErrBadSignature     = errors.New("callback signature mismatch")
	ErrMalformedOrderID = errors.New("malformed order id")

	// Upstream processor errors.
	ErrUpstreamProtocol    = errors.New("unexpected processor response")
	ErrUpstreamRejected    = errors.New("payment rejected by processor")
	ErrUpstreamUnavailable = errors.New("payment processor unavailable")
)
