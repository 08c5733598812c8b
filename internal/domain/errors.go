package domain

import "errors"

var (
	// Reconciliation errors
	ErrMissingClosingData = errors.New("register session has no closing balance data")
	ErrRatesUnavailable   = errors.New("no exchange rate available")
	ErrTransportFailure   = errors.New("upstream data source request failed")

	// Lookup errors
	ErrRegisterNotFound = errors.New("register session not found")
	ErrRunNotFound      = errors.New("reconciliation run not found")
)

// ClassifyError maps a calculation error to its batch outcome class so
// callers can distinguish "missing closure data" from generic failures.
func ClassifyError(err error) string {
	switch {
	case errors.Is(err, ErrMissingClosingData):
		return ErrorClassMissingClosing
	case errors.Is(err, ErrRatesUnavailable):
		return ErrorClassRates
	case errors.Is(err, ErrTransportFailure):
		return ErrorClassTransport
	default:
		return ErrorClassInternal
	}
}
