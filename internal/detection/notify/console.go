package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// ConsoleNotifier prints alerts to a writer, one block per device.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier constructs a notifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// Notify prints the alert with its indented explanation.
func (n *ConsoleNotifier) Notify(_ context.Context, alert Alert) error {
	if alert.Err != "" {
		_, err := fmt.Fprintf(n.out, "Device %s could not be evaluated: %s\n", alert.DeviceID, alert.Err)
		return err
	}
	explanation, err := json.MarshalIndent(alert.Verdict.Explanation, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(n.out, "Device %s is malfunctioning!\nExplanation:\n%s\n-------------\n", alert.DeviceID, explanation)
	return err
}
