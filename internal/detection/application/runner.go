package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	detection "devicewatch/internal/detection/domain"
	"devicewatch/internal/detection/interfaces"
	"devicewatch/internal/detection/metrics"
	"devicewatch/internal/detection/notify"
	telemetry "devicewatch/internal/telemetry/domain"
	fsstore "devicewatch/internal/telemetry/infrastructure/fs"
)

const (
	statusOK     = "ok"
	statusFaulty = "faulty"
	statusError  = "error"
)

// Result is the outcome of one device evaluation. Err is set when the device
// could not be evaluated; Verdict is meaningful otherwise.
type Result struct {
	DeviceID string
	Verdict  detection.FaultVerdict
	Err      error
}

// Runner evaluates every device of a day, fanning out over a bounded worker
// pool. A failure on one device never aborts its siblings.
type Runner struct {
	store     *fsstore.Store
	evaluator *Evaluator
	cfg       Config
	notifier  notify.Notifier
	metrics   *metrics.Metrics
	logger    *log.Logger
}

// NewRunner constructs a Runner.
func NewRunner(store *fsstore.Store, cfg Config, notifier notify.Notifier, m *metrics.Metrics, logger *log.Logger) *Runner {
	return &Runner{
		store:     store,
		evaluator: NewEvaluator(cfg),
		cfg:       cfg,
		notifier:  notifier,
		metrics:   m,
		logger:    logger,
	}
}

// ProcessDay evaluates all devices captured on the given day and returns one
// result per device. A missing day directory is not an error; it is reported
// as no data available.
func (r *Runner) ProcessDay(ctx context.Context, day time.Time) ([]Result, error) {
	started := time.Now()
	runID := uuid.NewString()

	devices, err := r.store.ListDevices(day)
	if err != nil {
		if errors.Is(err, fsstore.ErrNoData) {
			r.logf("no data available for date %s", day.Format("2006-01-02"))
			return nil, nil
		}
		return nil, err
	}
	if len(devices) == 0 {
		r.logf("no devices available for date %s", day.Format("2006-01-02"))
		return nil, nil
	}

	workers := r.cfg.Workers
	if workers <= 0 || workers > len(devices) {
		workers = len(devices)
	}
	r.logf("run %s: date=%s devices=%d workers=%d", runID, day.Format("2006-01-02"), len(devices), workers)

	results := make([]Result, len(devices))
	slots := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, dev := range devices {
		wg.Add(1)
		slots <- struct{}{}
		go func(i int, dev fsstore.Device) {
			defer wg.Done()
			defer func() { <-slots }()
			defer func() {
				if rec := recover(); rec != nil {
					results[i] = Result{DeviceID: dev.ID, Err: fmt.Errorf("panic: %v", rec)}
				}
			}()
			results[i] = r.processDevice(ctx, runID, day, dev)
		}(i, dev)
	}
	wg.Wait()

	if r.cfg.ReportDir != "" {
		if err := r.writeDaySummary(runID, day, results); err != nil {
			r.logf("run %s: day summary error: %v", runID, err)
		}
	}
	if r.metrics != nil {
		r.metrics.RunDuration.Observe(time.Since(started).Seconds())
	}
	return results, nil
}

func (r *Runner) processDevice(ctx context.Context, runID string, day time.Time, dev fsstore.Device) Result {
	worn, temperature, ppg, err := r.store.LoadDevice(dev, r.cfg.TelemetryRates())
	if err != nil {
		return r.failDevice(ctx, runID, day, dev.ID, err)
	}

	verdict, frame, err := r.evaluator.Evaluate(worn, temperature, ppg)
	if err != nil {
		return r.failDevice(ctx, runID, day, dev.ID, err)
	}

	status := statusOK
	if verdict.IsFaulty {
		status = statusFaulty
		if r.metrics != nil {
			r.metrics.FaultsTotal.Inc()
		}
		alert := notify.Alert{
			DeviceID: dev.ID,
			Day:      day.Format("2006-01-02"),
			RunID:    runID,
			Verdict:  verdict,
		}
		if r.notifier != nil {
			if err := r.notifier.Notify(ctx, alert); err != nil {
				r.logf("run %s: notify error: device=%s err=%v", runID, dev.ID, err)
			}
		}
		if r.cfg.ReportDir != "" {
			if err := r.writeDeviceReport(runID, day, dev.ID, verdict, frame); err != nil {
				r.logf("run %s: report error: device=%s err=%v", runID, dev.ID, err)
			}
		}
	}
	if r.metrics != nil {
		r.metrics.DevicesTotal.WithLabelValues(status).Inc()
	}
	return Result{DeviceID: dev.ID, Verdict: verdict}
}

func (r *Runner) failDevice(ctx context.Context, runID string, day time.Time, deviceID string, err error) Result {
	r.logf("run %s: could not evaluate device: device=%s err=%v", runID, deviceID, err)
	if r.metrics != nil {
		r.metrics.DevicesTotal.WithLabelValues(statusError).Inc()
	}
	if r.notifier != nil {
		alert := notify.Alert{
			DeviceID: deviceID,
			Day:      day.Format("2006-01-02"),
			RunID:    runID,
			Err:      err.Error(),
		}
		if notifyErr := r.notifier.Notify(ctx, alert); notifyErr != nil {
			r.logf("run %s: notify error: device=%s err=%v", runID, deviceID, notifyErr)
		}
	}
	return Result{DeviceID: deviceID, Err: err}
}

func (r *Runner) writeDeviceReport(runID string, day time.Time, deviceID string, verdict detection.FaultVerdict, frame *telemetry.AlignedFrame) error {
	report, err := interfaces.BuildDeviceReportPDF(deviceID, day, verdict, frame)
	if err != nil {
		return err
	}
	dir := r.runDir(runID, day)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, deviceID+".pdf"), report, 0o644); err != nil {
		return err
	}
	if r.metrics != nil {
		r.metrics.ReportsTotal.Inc()
	}
	return nil
}

func (r *Runner) writeDaySummary(runID string, day time.Time, results []Result) error {
	rows := make([]interfaces.DeviceSummary, 0, len(results))
	for _, result := range results {
		row := interfaces.DeviceSummary{
			DeviceID:     result.DeviceID,
			Faulty:       result.Verdict.IsFaulty,
			FailedChecks: result.Verdict.FailedChecks(),
		}
		if result.Err != nil {
			row.Err = result.Err.Error()
		}
		rows = append(rows, row)
	}
	summary, err := interfaces.BuildDaySummaryXLSX(day, rows)
	if err != nil {
		return err
	}
	dir := r.runDir(runID, day)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "summary.xlsx"), summary, 0o644)
}

func (r *Runner) runDir(runID string, day time.Time) string {
	return filepath.Join(r.cfg.ReportDir, day.Format("2006-01-02"), runID)
}

func (r *Runner) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
