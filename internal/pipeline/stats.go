package pipeline

import (
	"fmt"
	"math"

	"github.com/backmassage/assetopt/internal/display"
)

// Summary aggregates counters and byte totals over a set of results.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int

	// Over Success results with a known reduction.
	Measured     int
	reductionSum float64

	// Over measured Success results.
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// Add folds one result into the summary.
func (s *Summary) Add(r Result) {
	s.Total++
	switch r.Outcome {
	case Success:
		s.Succeeded++
		if r.Reduction.Known {
			s.Measured++
			s.reductionSum += r.Reduction.Percent
			s.TotalInputBytes += r.SourceBytes
			s.TotalOutputBytes += r.OutputBytes
		}
	case Failure:
		s.Failed++
	case Skipped:
		s.Skipped++
	}
}

// Merge folds another summary into s.
func (s *Summary) Merge(o Summary) {
	s.Total += o.Total
	s.Succeeded += o.Succeeded
	s.Failed += o.Failed
	s.Skipped += o.Skipped
	s.Measured += o.Measured
	s.reductionSum += o.reductionSum
	s.TotalInputBytes += o.TotalInputBytes
	s.TotalOutputBytes += o.TotalOutputBytes
}

// MeanReduction is the arithmetic mean of known reductions over Success
// results. It returns NaN when nothing was measured.
func (s *Summary) MeanReduction() float64 {
	if s.Measured == 0 {
		return math.NaN()
	}
	return s.reductionSum / float64(s.Measured)
}

// SpaceSaved returns the aggregate byte difference between measured inputs
// and outputs. Positive means outputs are smaller; negative means they grew.
func (s *Summary) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// String renders the one-line summary, e.g.
// "1 succeeded, 0 failed, 1 skipped, reduction 60.0%".
func (s *Summary) String() string {
	return fmt.Sprintf("%d succeeded, %d failed, %d skipped, reduction %s",
		s.Succeeded, s.Failed, s.Skipped, display.FormatPercent(s.MeanReduction()))
}
