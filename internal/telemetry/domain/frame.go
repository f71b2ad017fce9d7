package telemetry

// AlignedFrame is the common-rate representation of the three input signals:
// three sequences of identical length, index-aligned by position. Built once
// per device-day and read-only thereafter.
type AlignedFrame struct {
	Worn        []int
	Temperature []float64
	PPG         []float64
}

// Len returns the number of aligned positions.
func (f *AlignedFrame) Len() int { return len(f.Worn) }

// Align up-samples the three raw signals onto the highest configured rate by
// sample replication and truncates them to the minimum resulting length.
// Every rate must divide the target rate exactly; each signal must carry at
// least one sample.
func Align(worn, temperature, ppg RawSignal, rates Rates) (*AlignedFrame, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	for _, signal := range []RawSignal{worn, temperature, ppg} {
		if err := signal.Validate(); err != nil {
			return nil, err
		}
	}

	target := rates.Target()
	wornUp := upsample(worn.Samples, target/rates.Worn)
	temperatureUp := upsample(temperature.Samples, target/rates.Temperature)
	ppgUp := upsample(ppg.Samples, target/rates.PPG)

	cutoff := len(wornUp)
	if len(temperatureUp) < cutoff {
		cutoff = len(temperatureUp)
	}
	if len(ppgUp) < cutoff {
		cutoff = len(ppgUp)
	}

	frame := &AlignedFrame{
		Worn:        make([]int, cutoff),
		Temperature: temperatureUp[:cutoff],
		PPG:         ppgUp[:cutoff],
	}
	for i, v := range wornUp[:cutoff] {
		if v != 0 {
			frame.Worn[i] = 1
		}
	}
	return frame, nil
}

func upsample(samples []float64, factor int) []float64 {
	out := make([]float64, 0, len(samples)*factor)
	for _, v := range samples {
		for i := 0; i < factor; i++ {
			out = append(out, v)
		}
	}
	return out
}
