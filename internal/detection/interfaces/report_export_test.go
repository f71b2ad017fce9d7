package interfaces

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	detection "devicewatch/internal/detection/domain"
	telemetry "devicewatch/internal/telemetry/domain"
)

func testVerdict() detection.FaultVerdict {
	return detection.FaultVerdict{
		IsFaulty: true,
		Explanation: detection.Explanation{
			Worn: detection.Finding{
				1: detection.Checks{
					detection.CheckTemperatureOverStd: true,
					detection.CheckPPGOverStd:         false,
				},
			},
			NotWorn: detection.Finding{},
		},
	}
}

func testFrame(n int) *telemetry.AlignedFrame {
	frame := &telemetry.AlignedFrame{
		Worn:        make([]int, n),
		Temperature: make([]float64, n),
		PPG:         make([]float64, n),
	}
	for i := 0; i < n; i++ {
		frame.Worn[i] = i % 2
		frame.Temperature[i] = 3000 + float64(i%7)
		frame.PPG[i] = 2500 + float64(i%13)
	}
	return frame
}

func TestBuildDeviceReportPDF(t *testing.T) {
	day := time.Date(2021, 2, 2, 0, 0, 0, 0, time.UTC)
	report, err := BuildDeviceReportPDF("device_001", day, testVerdict(), testFrame(1000))
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if len(report) == 0 {
		t.Fatalf("empty pdf")
	}
	if !bytes.HasPrefix(report, []byte("%PDF")) {
		t.Fatalf("not a pdf: %q", report[:8])
	}
}

func TestBuildDeviceReportPDFWithoutFrame(t *testing.T) {
	day := time.Date(2021, 2, 2, 0, 0, 0, 0, time.UTC)
	report, err := BuildDeviceReportPDF("device_001", day, testVerdict(), nil)
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if len(report) == 0 {
		t.Fatalf("empty pdf")
	}
}

func TestBuildDaySummaryXLSX(t *testing.T) {
	day := time.Date(2021, 2, 2, 0, 0, 0, 0, time.UTC)
	rows := []DeviceSummary{
		{DeviceID: "device_001", Faulty: false},
		{DeviceID: "device_002", Err: "telemetry: insufficient data"},
		{DeviceID: "device_003", Faulty: true, FailedChecks: 2},
	}
	summary, err := BuildDaySummaryXLSX(day, rows)
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(summary))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	device, err := f.GetCellValue("devices", "A3")
	if err != nil || device != "device_001" {
		t.Errorf("A3 = %q %v", device, err)
	}
	errCell, err := f.GetCellValue("devices", "D4")
	if err != nil || errCell != "telemetry: insufficient data" {
		t.Errorf("D4 = %q %v", errCell, err)
	}
}

func TestDownsampleCapsPoints(t *testing.T) {
	values := make([]float64, 10000)
	for i := range values {
		values[i] = float64(i)
	}
	points := downsample(values, plotPoints)
	if len(points) != plotPoints {
		t.Fatalf("got %d points, want %d", len(points), plotPoints)
	}
	if points[0] != 0 || points[len(points)-1] != values[len(values)-1] {
		t.Fatalf("endpoints drifted: first=%g last=%g", points[0], points[len(points)-1])
	}
}
