package application

import (
	detection "devicewatch/internal/detection/domain"
	telemetry "devicewatch/internal/telemetry/domain"
)

// Evaluator runs the fault-detection pipeline for one device-day:
// align, segment, score, aggregate.
type Evaluator struct {
	rates telemetry.Rates
	rules detection.RuleConfig
}

// NewEvaluator constructs an Evaluator from a validated config.
func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{
		rates: cfg.TelemetryRates(),
		rules: cfg.RuleConfig(),
	}
}

// Evaluate aligns the three channels onto the common grid, partitions them
// into worn runs and scores each run. The returned frame backs plot
// rendering downstream.
func (e *Evaluator) Evaluate(worn, temperature, ppg telemetry.RawSignal) (detection.FaultVerdict, *telemetry.AlignedFrame, error) {
	frame, err := telemetry.Align(worn, temperature, ppg, e.rates)
	if err != nil {
		return detection.FaultVerdict{}, nil, err
	}

	segments := frame.Segments()
	wornFinding := detection.EvaluateWorn(frame, segments, e.rules)
	unwornFinding := detection.EvaluateUnworn(frame, segments, e.rules)

	verdict, err := detection.Aggregate(wornFinding, unwornFinding)
	if err != nil {
		return detection.FaultVerdict{}, nil, err
	}
	return verdict, frame, nil
}
