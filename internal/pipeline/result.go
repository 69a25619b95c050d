package pipeline

import (
	"math"
	"time"

	"github.com/backmassage/assetopt/internal/display"
)

// Outcome is the terminal state of one target.
type Outcome int

const (
	Success Outcome = iota + 1
	Failure
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Reduction is a signed size-reduction percentage, or unknown when the
// output could not be measured. The zero value is unknown.
type Reduction struct {
	Percent float64
	Known   bool
}

// Unknown is the unmeasured reduction sentinel.
var Unknown = Reduction{}

// String renders "60.0%" or "unknown".
func (r Reduction) String() string {
	if !r.Known {
		return "unknown"
	}
	return display.FormatPercent(r.Percent)
}

// ComputeReduction returns round1((1 - dst/src) * 100). Growth yields a
// negative value. A non-positive source size cannot be divided by and
// yields Unknown.
func ComputeReduction(srcSize, dstSize int64) Reduction {
	if srcSize <= 0 {
		return Unknown
	}
	p := (1 - float64(dstSize)/float64(srcSize)) * 100
	return Reduction{Percent: round1(p), Known: true}
}

func round1(x float64) float64 {
	r := math.Round(x*10) / 10
	if r == 0 {
		return 0 // normalize -0
	}
	return r
}

// Result is the immutable record of one processed target.
type Result struct {
	Target    Target
	Outcome   Outcome
	Reduction Reduction // Meaningful for Success only.
	Message   string    // Failure cause, verbatim; skip reason for Skipped.
	Err       error     // Failure cause, for errors.Is.
	Output    string    // Path the converter produced; "" if unknown.

	SourceBytes int64
	OutputBytes int64
	Elapsed     time.Duration
}

func skippedResult(t Target, reason string) Result {
	return Result{Target: t, Outcome: Skipped, Message: reason}
}

func failedResult(t Target, err error) Result {
	return Result{Target: t, Outcome: Failure, Message: err.Error(), Err: err}
}
