package interfaces

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	detection "devicewatch/internal/detection/domain"
	telemetry "devicewatch/internal/telemetry/domain"
)

// DeviceSummary is one row of the day summary export.
type DeviceSummary struct {
	DeviceID     string
	Faulty       bool
	FailedChecks int
	Err          string
}

// plotPoints caps how many samples each signal plot draws.
const plotPoints = 400

// BuildDeviceReportPDF renders a report for one device-day: the verdict, the
// failing checks per segment and a down-sampled plot of the three aligned
// signals.
func BuildDeviceReportPDF(deviceID string, day time.Time, verdict detection.FaultVerdict, frame *telemetry.AlignedFrame) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Device Fault Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Device: %s", deviceID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Day: %s", day.Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Faulty: %t", verdict.IsFaulty))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)))
	pdf.Ln(8)

	writeFinding(pdf, "Worn segments", verdict.Explanation.Worn)
	writeFinding(pdf, "Not-worn segments", verdict.Explanation.NotWorn)

	if frame != nil && frame.Len() > 1 {
		pdf.Ln(4)
		drawSeries(pdf, "worn", intsToFloats(frame.Worn))
		drawSeries(pdf, "temperature", frame.Temperature)
		drawSeries(pdf, "ppg", frame.PPG)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFinding(pdf *gofpdf.Fpdf, title string, finding detection.Finding) {
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, title)
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	if len(finding) == 0 {
		pdf.Cell(0, 5, "  (none)")
		pdf.Ln(5)
		return
	}
	ordinals := make([]int, 0, len(finding))
	for ordinal := range finding {
		ordinals = append(ordinals, ordinal)
	}
	sort.Ints(ordinals)
	for _, ordinal := range ordinals {
		checks := finding[ordinal]
		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			pdf.Cell(0, 5, fmt.Sprintf("  segment %d: %s = %t", ordinal, name, checks[name]))
			pdf.Ln(5)
		}
	}
}

func drawSeries(pdf *gofpdf.Fpdf, label string, values []float64) {
	const (
		left   = 15.0
		width  = 180.0
		height = 25.0
	)
	pdf.SetFont("Arial", "", 8)
	pdf.Cell(0, 4, label)
	pdf.Ln(4)
	top := pdf.GetY()

	points := downsample(values, plotPoints)
	min, max := points[0], points[0]
	for _, v := range points {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span == 0 {
		span = 1
	}

	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(left, top, width, height, "D")
	pdf.SetDrawColor(0, 0, 160)
	step := width / float64(len(points)-1)
	prevX, prevY := left, top+height-(points[0]-min)/span*height
	for i := 1; i < len(points); i++ {
		x := left + float64(i)*step
		y := top + height - (points[i]-min)/span*height
		pdf.Line(prevX, prevY, x, y)
		prevX, prevY = x, y
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetY(top + height + 3)
}

func downsample(values []float64, limit int) []float64 {
	if len(values) <= limit {
		return values
	}
	out := make([]float64, limit)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(limit-1)]
	}
	return out
}

func intsToFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// BuildDaySummaryXLSX renders a one-sheet workbook with a row per device.
func BuildDaySummaryXLSX(day time.Time, rows []DeviceSummary) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "devices"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Device health %s", day.Format("2006-01-02")))
	_ = f.SetCellValue(sheet, "A2", "Device")
	_ = f.SetCellValue(sheet, "B2", "Faulty")
	_ = f.SetCellValue(sheet, "C2", "Failed checks")
	_ = f.SetCellValue(sheet, "D2", "Error")
	for i, row := range rows {
		line := i + 3
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", line), row.DeviceID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", line), row.Faulty)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", line), row.FailedChecks)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", line), row.Err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
