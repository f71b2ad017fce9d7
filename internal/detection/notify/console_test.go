package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	detection "devicewatch/internal/detection/domain"
)

func TestConsoleNotifierFaultyDevice(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewConsoleNotifier(&buf)

	alert := Alert{
		DeviceID: "device_007",
		Day:      "2021-02-02",
		Verdict: detection.FaultVerdict{
			IsFaulty: true,
			Explanation: detection.Explanation{
				Worn: detection.Finding{
					1: detection.Checks{detection.CheckTemperatureOutside: true},
				},
				NotWorn: detection.Finding{},
			},
		},
	}
	if err := notifier.Notify(context.Background(), alert); err != nil {
		t.Fatalf("notify: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Device device_007 is malfunctioning!") {
		t.Errorf("missing headline: %q", out)
	}
	if !strings.Contains(out, detection.CheckTemperatureOutside) {
		t.Errorf("missing check name: %q", out)
	}
	if !strings.Contains(out, `"not_worn"`) {
		t.Errorf("missing not_worn mapping: %q", out)
	}
}

func TestConsoleNotifierUnevaluableDevice(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewConsoleNotifier(&buf)

	alert := Alert{DeviceID: "device_009", Err: "telemetry: insufficient data"}
	if err := notifier.Notify(context.Background(), alert); err != nil {
		t.Fatalf("notify: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Device device_009 could not be evaluated") {
		t.Errorf("missing notice: %q", out)
	}
	if strings.Contains(out, "malfunctioning") {
		t.Errorf("error notice rendered as fault alert: %q", out)
	}
}
