package telemetry

// Segment is a maximal run of consecutive frame positions sharing the same
// worn state. Ordinal is the 1-based counter of the segment within its own
// state, assigned in index order.
type Segment struct {
	Start   int // inclusive
	End     int // exclusive
	Worn    bool
	Ordinal int
}

// Len returns the number of positions in the segment.
func (s Segment) Len() int { return s.End - s.Start }

// Segments partitions the frame into maximal constant-worn runs, in original
// index order. The result is a fresh slice; an empty frame yields none.
func (f *AlignedFrame) Segments() []Segment {
	n := f.Len()
	if n == 0 {
		return nil
	}

	var segments []Segment
	var wornCount, unwornCount int
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && f.Worn[i] == f.Worn[start] {
			continue
		}
		worn := f.Worn[start] == 1
		ordinal := &unwornCount
		if worn {
			ordinal = &wornCount
		}
		*ordinal++
		segments = append(segments, Segment{Start: start, End: i, Worn: worn, Ordinal: *ordinal})
		start = i
	}
	return segments
}
