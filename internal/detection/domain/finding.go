package detection

// Check names produced by the fault rules.
const (
	CheckTemperatureOverStd    = "temperature_over_std_threshold"
	CheckPPGOverStd            = "ppg_over_std_threshold"
	CheckTemperatureOutside    = "temperature_outside_range"
	CheckPPGOverThreshold      = "ppg_over_threshold"
	CheckTemperatureIncreasing = "is_temperature_increasing"
	CheckPPGIncreasing         = "is_ppg_increasing"
)

// Checks holds the named boolean rule results for one segment.
type Checks map[string]bool

// Finding maps a segment ordinal to its rule results. Pure output of rule
// evaluation; never mutated after creation.
type Finding map[int]Checks

func (f Finding) anyTrue() (bool, error) {
	any := false
	for ordinal, checks := range f {
		if checks == nil {
			return false, wrapMalformed(ordinal)
		}
		for _, v := range checks {
			if v {
				any = true
			}
		}
	}
	return any, nil
}
