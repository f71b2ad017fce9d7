package fs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	telemetry "devicewatch/internal/telemetry/domain"
)

// ErrNoData indicates the day directory does not exist. Callers report it as
// "no data available" rather than a failure.
var ErrNoData = errors.New("fs: no data for day")

var devicePattern = regexp.MustCompile(`^device_\d{3}$`)

// Device is one device capture directory inside a day tree.
type Device struct {
	ID   string
	Path string
}

// Store reads raw-signal captures from a base/YYYY/MM/DD directory tree.
type Store struct {
	base string
}

// NewStore constructs a Store rooted at base.
func NewStore(base string) *Store {
	return &Store{base: base}
}

// DayDir resolves the directory holding one day's device captures.
func (s *Store) DayDir(day time.Time) string {
	return filepath.Join(s.base, day.Format("2006"), day.Format("01"), day.Format("02"))
}

// ListDevices returns the device directories for a day, sorted by id. A
// missing day directory yields ErrNoData.
func (s *Store) ListDevices(day time.Time) ([]Device, error) {
	dayDir := s.DayDir(day)
	entries, err := os.ReadDir(dayDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoData, dayDir)
		}
		return nil, fmt.Errorf("fs: list day %s: %w", dayDir, err)
	}

	var devices []Device
	for _, entry := range entries {
		if !entry.IsDir() || !devicePattern.MatchString(entry.Name()) {
			continue
		}
		devices = append(devices, Device{
			ID:   entry.Name(),
			Path: filepath.Join(dayDir, entry.Name()),
		})
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })
	return devices, nil
}

// LoadDevice reads the worn, temperature and PPG channels of one device.
// The directory must contain exactly three header-less single-column CSV
// files which carry the channels in that order when sorted by name.
func (s *Store) LoadDevice(dev Device, rates telemetry.Rates) (worn, temperature, ppg telemetry.RawSignal, err error) {
	entries, err := os.ReadDir(dev.Path)
	if err != nil {
		return worn, temperature, ppg, fmt.Errorf("%w: device %s: %v", telemetry.ErrInsufficientData, dev.ID, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dev.Path, entry.Name()))
	}
	sort.Strings(files)
	if len(files) != 3 {
		return worn, temperature, ppg, fmt.Errorf("%w: device %s has %d csv files, want 3", telemetry.ErrInsufficientData, dev.ID, len(files))
	}

	channels := []struct {
		name   string
		rate   int
		signal *telemetry.RawSignal
	}{
		{"worn", rates.Worn, &worn},
		{"temperature", rates.Temperature, &temperature},
		{"ppg", rates.PPG, &ppg},
	}
	for i, channel := range channels {
		samples, err := readColumn(files[i])
		if err != nil {
			return worn, temperature, ppg, fmt.Errorf("device %s %s channel: %w", dev.ID, channel.name, err)
		}
		*channel.signal = telemetry.RawSignal{Name: channel.name, Rate: channel.rate, Samples: samples}
	}
	return worn, temperature, ppg, nil
}

func readColumn(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", telemetry.ErrInsufficientData, err)
	}
	defer file.Close()

	var samples []float64
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", telemetry.ErrInsufficientData, path, line, err)
		}
		samples = append(samples, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", telemetry.ErrInsufficientData, path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", telemetry.ErrInsufficientData, path)
	}
	return samples, nil
}
