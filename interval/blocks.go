package interval

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"
)

// Blocks is the BED12 encoding of a set of exons that live on one chromosome.
// Start and End are the 0-based outer bounds of the feature.  Lengths[i] and
// RelStarts[i] describe the i'th block in increasing genomic order, with
// RelStarts relative to Start.
type Blocks struct {
	Start     PosType
	End       PosType
	Lengths   []PosType
	RelStarts []PosType
}

// Len returns the number of blocks.
func (b Blocks) Len() int {
	return len(b.Lengths)
}

// Increasing returns true iff the block starts are strictly increasing.  It
// is false when two distinct exons begin at the same position.
func (b Blocks) Increasing() bool {
	for i := 1; i < len(b.RelStarts); i++ {
		if b.RelStarts[i] <= b.RelStarts[i-1] {
			return false
		}
	}
	return true
}

// NewBlocks computes the block encoding of exons.  exons need not be sorted.
// Blocks are ordered by (start, end), and identical exons are reported once.
// Distinct exons sharing a start each get a block; use Increasing to detect
// them.  It returns an errors.Invalid error if exons is empty, spans more
// than one chromosome, or contains a degenerate interval.
func NewBlocks(exons []Entry) (b Blocks, err error) {
	if len(exons) == 0 {
		err = errors.E(errors.Invalid, "interval.NewBlocks: no exons")
		return
	}
	chrName := exons[0].ChrName
	closed := make([]Closed, 0, len(exons))
	for _, e := range exons {
		if err = e.Validate(); err != nil {
			return
		}
		if e.ChrName != chrName {
			err = errors.E(errors.Invalid, fmt.Sprintf("interval.NewBlocks: exons on both %s and %s", chrName, e.ChrName))
			return
		}
		closed = append(closed, e.Closed())
	}
	sort.Slice(closed, func(i, j int) bool {
		if closed[i].First != closed[j].First {
			return closed[i].First < closed[j].First
		}
		return closed[i].Last < closed[j].Last
	})

	b.Start = closed[0].First
	last := closed[0].Last
	b.Lengths = make([]PosType, 0, len(closed))
	b.RelStarts = make([]PosType, 0, len(closed))
	for i, c := range closed {
		if i > 0 && c == closed[i-1] {
			continue
		}
		if c.Last > last {
			last = c.Last
		}
		b.Lengths = append(b.Lengths, c.Len())
		b.RelStarts = append(b.RelStarts, c.First-b.Start)
	}
	b.End = last + 1
	return
}
