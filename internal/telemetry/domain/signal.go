package telemetry

import "fmt"

// RawSignal is one sensor channel as captured on the device: ordered samples
// at a fixed, signal-specific sampling rate. Immutable once loaded.
type RawSignal struct {
	Name    string
	Rate    int // samples per second
	Samples []float64
}

// Validate checks signal invariants.
func (s RawSignal) Validate() error {
	if s.Rate <= 0 {
		return fmt.Errorf("%w: signal %q has rate %d", ErrInvalidRates, s.Name, s.Rate)
	}
	if len(s.Samples) == 0 {
		return fmt.Errorf("%w: signal %q is empty", ErrInsufficientData, s.Name)
	}
	return nil
}

// Rates holds the native sampling rate of each channel.
type Rates struct {
	Worn        int
	Temperature int
	PPG         int
}

// Target returns the highest configured rate, the common grid all channels
// are aligned onto.
func (r Rates) Target() int {
	target := r.Worn
	if r.Temperature > target {
		target = r.Temperature
	}
	if r.PPG > target {
		target = r.PPG
	}
	return target
}

// Validate checks that every rate is positive and an exact divisor of the
// target rate. Non-integral ratios cannot be aligned by sample replication.
func (r Rates) Validate() error {
	target := r.Target()
	for _, entry := range []struct {
		name string
		rate int
	}{
		{"worn", r.Worn},
		{"temperature", r.Temperature},
		{"ppg", r.PPG},
	} {
		if entry.rate <= 0 {
			return fmt.Errorf("%w: %s rate %d", ErrInvalidRates, entry.name, entry.rate)
		}
		if target%entry.rate != 0 {
			return fmt.Errorf("%w: %s rate %d does not divide target rate %d", ErrInvalidRates, entry.name, entry.rate, target)
		}
	}
	return nil
}
