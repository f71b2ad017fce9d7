package telemetry

import (
	"errors"
	"testing"
)

func signal(name string, rate int, samples ...float64) RawSignal {
	return RawSignal{Name: name, Rate: rate, Samples: samples}
}

func repeated(value float64, count int) []float64 {
	out := make([]float64, count)
	for i := range out {
		out[i] = value
	}
	return out
}

func TestAlignLengthInvariant(t *testing.T) {
	cases := []struct {
		name    string
		rates   Rates
		worn    int
		temp    int
		ppg     int
		wantLen int
	}{
		{"ppg limits", Rates{Worn: 1, Temperature: 4, PPG: 64}, 60, 244, 3845, 3840},
		{"worn limits", Rates{Worn: 1, Temperature: 4, PPG: 64}, 59, 244, 3845, 3776},
		{"equal rates", Rates{Worn: 8, Temperature: 8, PPG: 8}, 10, 12, 11, 10},
		{"mixed", Rates{Worn: 2, Temperature: 4, PPG: 8}, 10, 7, 9, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frame, err := Align(
				signal("worn", tc.rates.Worn, repeated(1, tc.worn)...),
				signal("temperature", tc.rates.Temperature, repeated(3000, tc.temp)...),
				signal("ppg", tc.rates.PPG, repeated(2500, tc.ppg)...),
				tc.rates,
			)
			if err != nil {
				t.Fatalf("align: %v", err)
			}
			if frame.Len() != tc.wantLen {
				t.Fatalf("frame length = %d, want %d", frame.Len(), tc.wantLen)
			}
			if len(frame.Worn) != len(frame.Temperature) || len(frame.Worn) != len(frame.PPG) {
				t.Fatalf("sequences differ in length: %d %d %d", len(frame.Worn), len(frame.Temperature), len(frame.PPG))
			}
		})
	}
}

func TestAlignReplicatesSamples(t *testing.T) {
	rates := Rates{Worn: 1, Temperature: 2, PPG: 4}
	frame, err := Align(
		signal("worn", 1, 1, 0),
		signal("temperature", 2, 10, 20, 30, 40),
		signal("ppg", 4, 1, 2, 3, 4, 5, 6, 7, 8),
		rates,
	)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	wantWorn := []int{1, 1, 1, 1, 0, 0, 0, 0}
	wantTemperature := []float64{10, 10, 20, 20, 30, 30, 40, 40}
	wantPPG := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	if frame.Len() != 8 {
		t.Fatalf("frame length = %d, want 8", frame.Len())
	}
	for i := range wantWorn {
		if frame.Worn[i] != wantWorn[i] {
			t.Errorf("worn[%d] = %d, want %d", i, frame.Worn[i], wantWorn[i])
		}
		if frame.Temperature[i] != wantTemperature[i] {
			t.Errorf("temperature[%d] = %g, want %g", i, frame.Temperature[i], wantTemperature[i])
		}
		if frame.PPG[i] != wantPPG[i] {
			t.Errorf("ppg[%d] = %g, want %g", i, frame.PPG[i], wantPPG[i])
		}
	}
}

func TestAlignRejectsNonIntegralRateRatio(t *testing.T) {
	rates := Rates{Worn: 1, Temperature: 3, PPG: 64}
	_, err := Align(
		signal("worn", 1, 1),
		signal("temperature", 3, 3000, 3000, 3000),
		signal("ppg", 64, repeated(2500, 64)...),
		rates,
	)
	if !errors.Is(err, ErrInvalidRates) {
		t.Fatalf("err = %v, want ErrInvalidRates", err)
	}
}

func TestAlignRejectsEmptySignal(t *testing.T) {
	rates := Rates{Worn: 1, Temperature: 4, PPG: 64}
	_, err := Align(
		signal("worn", 1, 1),
		signal("temperature", 4),
		signal("ppg", 64, repeated(2500, 64)...),
		rates,
	)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestRatesValidate(t *testing.T) {
	if err := (Rates{Worn: 1, Temperature: 4, PPG: 64}).Validate(); err != nil {
		t.Fatalf("valid rates rejected: %v", err)
	}
	if err := (Rates{Worn: 0, Temperature: 4, PPG: 64}).Validate(); !errors.Is(err, ErrInvalidRates) {
		t.Fatalf("zero rate: err = %v, want ErrInvalidRates", err)
	}
	if err := (Rates{Worn: 1, Temperature: 48, PPG: 64}).Validate(); !errors.Is(err, ErrInvalidRates) {
		t.Fatalf("non-divisor rate: err = %v, want ErrInvalidRates", err)
	}
}
