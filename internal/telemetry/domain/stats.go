package telemetry

import "math"

// RollingStd returns the sample standard deviation over a sliding window of
// consecutive samples. Only full windows produce a value, so the result
// holds len(samples)-window+1 entries; shorter inputs yield none.
func RollingStd(samples []float64, window int) []float64 {
	if window < 2 || len(samples) < window {
		return nil
	}
	out := make([]float64, 0, len(samples)-window+1)
	var sum, sumSq float64
	for i, v := range samples {
		sum += v
		sumSq += v * v
		if i >= window {
			old := samples[i-window]
			sum -= old
			sumSq -= old * old
		}
		if i < window-1 {
			continue
		}
		n := float64(window)
		variance := (sumSq - sum*sum/n) / (n - 1)
		if variance < 0 {
			// guard against negative rounding residue
			variance = 0
		}
		out = append(out, math.Sqrt(variance))
	}
	return out
}

// Gradient returns the finite-difference derivative of samples with the
// given sample spacing: central differences at interior points, one-sided
// differences at the edges. Inputs shorter than two samples yield none.
func Gradient(samples []float64, spacing float64) []float64 {
	n := len(samples)
	if n < 2 || spacing == 0 {
		return nil
	}
	out := make([]float64, n)
	out[0] = (samples[1] - samples[0]) / spacing
	out[n-1] = (samples[n-1] - samples[n-2]) / spacing
	for i := 1; i < n-1; i++ {
		out[i] = (samples[i+1] - samples[i-1]) / (2 * spacing)
	}
	return out
}

// Sum returns the plain sum of values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
