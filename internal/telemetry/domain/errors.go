package telemetry

import "errors"

// ErrInsufficientData indicates a missing or empty device signal.
var ErrInsufficientData = errors.New("telemetry: insufficient data")

// ErrInvalidRates indicates sampling rates that are not exact multiples of each other.
var ErrInvalidRates = errors.New("telemetry: invalid sampling rates")
