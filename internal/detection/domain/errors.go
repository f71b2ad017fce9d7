package detection

import (
	"errors"
	"fmt"
)

// ErrMalformedFinding indicates a rule produced something other than a set
// of named boolean checks for a segment.
var ErrMalformedFinding = errors.New("detection: malformed finding")

func wrapMalformed(ordinal int) error {
	return fmt.Errorf("%w: segment %d has no check set", ErrMalformedFinding, ordinal)
}
