package detection

import (
	"errors"

	telemetry "devicewatch/internal/telemetry/domain"
)

// Gradient sample spacings used by the off-wrist trend checks.
const (
	temperatureGradientSpacing = 4
	ppgGradientSpacing         = 1
)

// RuleConfig carries the tuned thresholds for the fault rules. The count
// gates scale with the window: a rolling-std check trips only when more than
// WindowSize (temperature) or 4x WindowSize (PPG) window positions exceed
// the threshold.
type RuleConfig struct {
	WindowSize              int
	TemperatureStdThreshold float64
	PPGStdWornThreshold     float64
	PPGStdUnwornThreshold   float64
	TemperatureRangeMin     float64
	TemperatureRangeMax     float64
	UnwornMinSegmentLength  int
	UnwornTrendChecks       bool
}

// Validate checks rule configuration invariants.
func (c RuleConfig) Validate() error {
	if c.WindowSize < 2 {
		return errors.New("rules: window size must be at least 2")
	}
	if c.TemperatureStdThreshold <= 0 {
		return errors.New("rules: temperature std threshold must be positive")
	}
	if c.PPGStdWornThreshold <= 0 {
		return errors.New("rules: worn ppg std threshold must be positive")
	}
	if c.PPGStdUnwornThreshold <= 0 {
		return errors.New("rules: unworn ppg std threshold must be positive")
	}
	if c.TemperatureRangeMin >= c.TemperatureRangeMax {
		return errors.New("rules: temperature range min must be below max")
	}
	if c.UnwornMinSegmentLength < 0 {
		return errors.New("rules: unworn minimum segment length must not be negative")
	}
	return nil
}

// EvaluateWorn scores every worn segment, including length-1 segments.
// While the device is worn both sensors should read a physiologically
// plausible, low-noise signal; sustained high variance or out-of-range
// readings indicate a faulty sensor rather than transient noise.
func EvaluateWorn(frame *telemetry.AlignedFrame, segments []telemetry.Segment, cfg RuleConfig) Finding {
	finding := Finding{}
	for _, seg := range segments {
		if !seg.Worn {
			continue
		}
		temperature := frame.Temperature[seg.Start:seg.End]
		ppg := frame.PPG[seg.Start:seg.End]

		temperatureStd := telemetry.RollingStd(temperature, cfg.WindowSize)
		ppgStd := telemetry.RollingStd(ppg, cfg.WindowSize)

		outside := 0
		for _, v := range temperature {
			if v < cfg.TemperatureRangeMin || v >= cfg.TemperatureRangeMax {
				outside++
			}
		}

		finding[seg.Ordinal] = Checks{
			CheckTemperatureOverStd: countOver(temperatureStd, cfg.TemperatureStdThreshold) > cfg.WindowSize,
			CheckPPGOverStd:         countOver(ppgStd, cfg.PPGStdWornThreshold) > 4*cfg.WindowSize,
			CheckTemperatureOutside: outside > cfg.WindowSize,
		}
	}
	return finding
}

// EvaluateUnworn scores every not-worn segment longer than the configured
// minimum; shorter runs are too brief to be statistically meaningful and do
// not appear in the result. While not worn, both signals are expected to
// trend toward ambient baseline; sustained PPG variance or a net-increasing
// trend suggests spurious off-wrist activity.
func EvaluateUnworn(frame *telemetry.AlignedFrame, segments []telemetry.Segment, cfg RuleConfig) Finding {
	finding := Finding{}
	for _, seg := range segments {
		if seg.Worn || seg.Len() <= cfg.UnwornMinSegmentLength {
			continue
		}
		temperature := frame.Temperature[seg.Start:seg.End]
		ppg := frame.PPG[seg.Start:seg.End]

		ppgStd := telemetry.RollingStd(ppg, cfg.WindowSize)

		checks := Checks{
			CheckPPGOverThreshold: countOver(ppgStd, cfg.PPGStdUnwornThreshold) > 4*cfg.WindowSize,
		}
		if cfg.UnwornTrendChecks {
			temperatureTrend := telemetry.Sum(telemetry.Gradient(temperature, temperatureGradientSpacing))
			ppgTrend := telemetry.Sum(telemetry.Gradient(ppg, ppgGradientSpacing))
			checks[CheckTemperatureIncreasing] = temperatureTrend > 0
			checks[CheckPPGIncreasing] = ppgTrend > 0
		}
		finding[seg.Ordinal] = checks
	}
	return finding
}

func countOver(values []float64, threshold float64) int {
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return count
}
