// Package errors provides structured error types for better observability
// and programmatic error handling across the fingerprint facade.
//
// Only whole-request failures are surfaced as errors. Per-metric failures are
// recorded as unavailable values carrying ErrCodeProviderUnavailable.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidRequest,
//	    "unknown metric requested",
//	    cause,
//	    map[string]any{
//	        "metric": name,
//	    },
//	)
package errors
