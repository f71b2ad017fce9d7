package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	detection "devicewatch/internal/detection/domain"
)

func TestWebhookNotifierPayload(t *testing.T) {
	received := make(chan Alert, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var alert Alert
		if err := json.Unmarshal(body, &alert); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received <- alert
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	alert := Alert{
		DeviceID: "device_001",
		Day:      "2021-02-02",
		RunID:    "run-1",
		Verdict: detection.FaultVerdict{
			IsFaulty: true,
			Explanation: detection.Explanation{
				Worn:    detection.Finding{1: detection.Checks{detection.CheckPPGOverStd: true}},
				NotWorn: detection.Finding{},
			},
		},
	}
	if err := NewWebhookNotifier(server.URL).Notify(context.Background(), alert); err != nil {
		t.Fatalf("notify: %v", err)
	}

	got := <-received
	if got.DeviceID != "device_001" || !got.Verdict.IsFaulty {
		t.Fatalf("payload = %+v", got)
	}
	if !got.Verdict.Explanation.Worn[1][detection.CheckPPGOverStd] {
		t.Fatalf("explanation lost in transit: %+v", got.Verdict.Explanation)
	}
}

func TestWebhookNotifierNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if err := NewWebhookNotifier(server.URL).Notify(context.Background(), Alert{DeviceID: "d"}); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}

func TestWebhookNotifierEmptyURL(t *testing.T) {
	if err := NewWebhookNotifier("").Notify(context.Background(), Alert{}); err == nil {
		t.Fatalf("expected error on empty url")
	}
}
