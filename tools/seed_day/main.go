package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// seed_day writes a synthetic day tree of device captures for local runs:
// base/YYYY/MM/DD/device_NNN with worn, temperature and ppg CSV columns.
func main() {
	base := flag.String("base", "raw_bucket", "base path of the day tree")
	date := flag.String("date", "", "day to seed (YYYY-MM-DD, default yesterday)")
	devices := flag.Int("devices", 5, "number of devices")
	seconds := flag.Int("seconds", 300, "seconds of capture per device")
	faulty := flag.Int("faulty", 1, "number of devices seeded with a noisy temperature sensor")
	seed := flag.Int64("seed", 1, "rng seed")
	flag.Parse()

	day := time.Now().UTC().AddDate(0, 0, -1)
	if *date != "" {
		parsed, err := time.Parse("2006-01-02", *date)
		if err != nil {
			log.Fatalf("invalid date: %v", err)
		}
		day = parsed
	}

	rng := rand.New(rand.NewSource(*seed))
	dayDir := filepath.Join(*base, day.Format("2006"), day.Format("01"), day.Format("02"))
	for i := 0; i < *devices; i++ {
		deviceDir := filepath.Join(dayDir, fmt.Sprintf("device_%03d", i+1))
		if err := os.MkdirAll(deviceDir, 0o755); err != nil {
			log.Fatalf("mkdir %s: %v", deviceDir, err)
		}
		noisy := i < *faulty
		if err := writeDevice(deviceDir, rng, *seconds, noisy); err != nil {
			log.Fatalf("seed %s: %v", deviceDir, err)
		}
	}
	log.Printf("seeded %d devices under %s", *devices, dayDir)
}

func writeDevice(dir string, rng *rand.Rand, seconds int, noisy bool) error {
	worn := make([]float64, seconds)
	for i := range worn {
		// worn for the first two thirds, off-wrist for the rest
		if i < seconds*2/3 {
			worn[i] = 1
		}
	}

	temperature := make([]float64, seconds*4)
	for i := range temperature {
		temperature[i] = 3000 + rng.Float64()*50
		if noisy && i%2 == 0 {
			temperature[i] += 2000
		}
	}

	ppg := make([]float64, seconds*64)
	for i := range ppg {
		ppg[i] = 2500 + rng.Float64()*200
	}

	for name, column := range map[string][]float64{
		"1_worn.csv":        worn,
		"2_temperature.csv": temperature,
		"3_ppg.csv":         ppg,
	} {
		if err := writeColumn(filepath.Join(dir, name), column); err != nil {
			return err
		}
	}
	return nil
}

func writeColumn(path string, column []float64) error {
	var b strings.Builder
	for _, v := range column {
		fmt.Fprintf(&b, "%g\n", v)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
