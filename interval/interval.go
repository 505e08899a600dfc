package interval

import (
	"fmt"
	"math"

	"github.com/grailbio/base/errors"
)

// PosType is the type used to represent interval coordinates.  int32 should be
// wide enough for some time to come, since that's what BAM is limited to.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32

// Entry represents a single interval, with 0-based coordinates.
type Entry struct {
	ChrName string
	Start0  PosType
	End     PosType
}

// Closed is an interval where both ends are closed, i.e. it covers positions
// First..Last inclusive.
type Closed struct {
	First PosType
	Last  PosType
}

// Len returns the number of positions covered by c.
func (c Closed) Len() PosType {
	return c.Last - c.First + 1
}

// Validate returns an errors.Invalid error if e is not a non-empty interval
// inside [0, PosTypeMax).
func (e Entry) Validate() error {
	if e.Start0 < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("interval: negative start coordinate %d on %s", e.Start0, e.ChrName))
	}
	if e.End >= PosTypeMax {
		return errors.E(errors.Invalid, fmt.Sprintf("interval: end coordinate %d on %s out of range", e.End, e.ChrName))
	}
	if e.End <= e.Start0 {
		return errors.E(errors.Invalid, fmt.Sprintf("interval: degenerate interval [%d, %d) on %s", e.Start0, e.End, e.ChrName))
	}
	return nil
}

// Closed converts the half-open [Start0, End) to the inclusive
// [Start0, End-1].  e must be valid.
func (e Entry) Closed() Closed {
	return Closed{First: e.Start0, Last: e.End - 1}
}

// Len returns End - Start0.
func (e Entry) Len() PosType {
	return e.End - e.Start0
}
