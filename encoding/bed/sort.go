package bed

import (
	"sort"

	"github.com/eboileau/pproc/interval"
)

type locus struct {
	seqname string
	start   interval.PosType
	strand  string
	end     interval.PosType
	id      string
}

// less orders by (seqname, start, strand).  end and id only break ties, so
// that the order does not depend on the input order.
func (a locus) less(b locus) bool {
	if a.seqname != b.seqname {
		return a.seqname < b.seqname
	}
	if a.start != b.start {
		return a.start < b.start
	}
	if a.strand != b.strand {
		return a.strand < b.strand
	}
	if a.end != b.end {
		return a.end < b.end
	}
	return a.id < b.id
}

// SortExonRows sorts rows in place by (seqname, start, strand).
func SortExonRows(rows []ExonRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		return locus{a.Seqname, a.Start, a.Strand, a.End, a.ID}.less(
			locus{b.Seqname, b.Start, b.Strand, b.End, b.ID})
	})
}

// SortRecords sorts records in place by (seqname, start, strand).
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		return locus{a.Seqname, a.Start, a.Strand, a.End, a.ID}.less(
			locus{b.Seqname, b.Start, b.Strand, b.End, b.ID})
	})
}
