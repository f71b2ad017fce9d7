package detection

// Explanation pairs the worn and not-worn findings that back a verdict.
type Explanation struct {
	Worn    Finding `json:"worn"`
	NotWorn Finding `json:"not_worn"`
}

// FaultVerdict is the terminal artifact for one device-day.
type FaultVerdict struct {
	IsFaulty    bool        `json:"is_faulty"`
	Explanation Explanation `json:"explanation"`
}

// FailedChecks returns the number of true check values across both findings.
func (v FaultVerdict) FailedChecks() int {
	count := 0
	for _, finding := range []Finding{v.Explanation.Worn, v.Explanation.NotWorn} {
		for _, checks := range finding {
			for _, failed := range checks {
				if failed {
					count++
				}
			}
		}
	}
	return count
}

// Aggregate combines the per-segment findings into one verdict. A single
// positive check on a single segment flags the whole device-day; there is no
// quorum across segments. Both findings are preserved unmodified in the
// explanation for the downstream alert sink.
func Aggregate(worn, unworn Finding) (FaultVerdict, error) {
	wornFaulty, err := worn.anyTrue()
	if err != nil {
		return FaultVerdict{}, err
	}
	unwornFaulty, err := unworn.anyTrue()
	if err != nil {
		return FaultVerdict{}, err
	}
	return FaultVerdict{
		IsFaulty: wornFaulty || unwornFaulty,
		Explanation: Explanation{
			Worn:    worn,
			NotWorn: unworn,
		},
	}, nil
}
