package notify

import (
	"context"

	detection "devicewatch/internal/detection/domain"
)

// Alert describes one malfunctioning or unevaluable device. Err is set when
// the device could not be evaluated at all; Verdict is meaningful otherwise.
type Alert struct {
	DeviceID string                 `json:"device_id"`
	Day      string                 `json:"day"`
	RunID    string                 `json:"run_id"`
	Verdict  detection.FaultVerdict `json:"verdict"`
	Err      string                 `json:"error,omitempty"`
}

// Notifier publishes device alerts.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}
