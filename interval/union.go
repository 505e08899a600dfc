package interval

import (
	"sort"
)

// Union is currently implemented as a collection of length-2N sequences,
// where N is the number of disjoint intervals on a chromosome, the (0-based)
// start position of interval #k is in element [2k] and the end position is in
// element [2k+1], and the intervals are stored in increasing order.
// Overlapping and touching intervals are merged.
type Union struct {
	// nameMap is a chromosome-keyed map with disjoint-interval-set values.
	// Always initialized.
	nameMap map[string]([]PosType)
}

// NewUnion builds the interval-union of entries.  Unlike a BED loader, it
// does not require entries to be sorted, and empty entries are ignored.
func NewUnion(entries []Entry) Union {
	sorted := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.End > e.Start0 {
			sorted = append(sorted, e)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ChrName != sorted[j].ChrName {
			return sorted[i].ChrName < sorted[j].ChrName
		}
		return sorted[i].Start0 < sorted[j].Start0
	})

	u := Union{nameMap: make(map[string]([]PosType))}
	prevChr := ""
	var prevStart, prevEnd PosType
	var chrIntervals []PosType
	for i, entry := range sorted {
		if i == 0 || entry.ChrName != prevChr {
			if i > 0 {
				u.nameMap[prevChr] = append(chrIntervals, prevStart, prevEnd)
			}
			prevChr = entry.ChrName
			chrIntervals = []PosType{}
			prevStart = entry.Start0
			prevEnd = entry.End
			continue
		}
		if entry.Start0 > prevEnd {
			// New interval doesn't touch the previous one, so we can save the
			// previous one.
			chrIntervals = append(chrIntervals, prevStart, prevEnd)
			prevStart = entry.Start0
			prevEnd = entry.End
		} else if entry.End > prevEnd {
			prevEnd = entry.End
		}
	}
	if len(sorted) > 0 {
		u.nameMap[prevChr] = append(chrIntervals, prevStart, prevEnd)
	}
	return u
}

// Len returns the number of positions covered by the union.
func (u Union) Len() int {
	n := 0
	for _, endpoints := range u.nameMap {
		for i := 0; i < len(endpoints); i += 2 {
			n += int(endpoints[i+1] - endpoints[i])
		}
	}
	return n
}
