// Package bed reads BED6 interval files and writes BED12 files.  It owns the
// column schemas of both formats.
package bed

import (
	"github.com/eboileau/pproc/interval"
)

// BED6Fields lists the BED6 columns, in file order.
var BED6Fields = [...]string{"seqname", "start", "end", "id", "score", "strand"}

// BED12Fields lists the BED12 columns, in file order.
var BED12Fields = [...]string{
	"seqname", "start", "end", "id", "score", "strand",
	"thick_start", "thick_end", "color",
	"num_exons", "exon_lengths", "exon_genomic_relative_starts",
}

// Strands.
const (
	StrandForward = "+"
	StrandReverse = "-"
)

// ExonRow is one BED6 line.  [Start, End) is 0-based and half-open.
type ExonRow struct {
	Seqname string
	Start   interval.PosType
	End     interval.PosType
	ID      string
	Score   int
	Strand  string
}

// Entry returns the genomic interval covered by r.
func (r ExonRow) Entry() interval.Entry {
	return interval.Entry{ChrName: r.Seqname, Start0: r.Start, End: r.End}
}

// Record is one BED12 line.  ExonLengths and ExonRelStarts have NumExons
// entries each, in increasing genomic order; ExonRelStarts are relative to
// Start.
type Record struct {
	Seqname       string
	Start         interval.PosType
	End           interval.PosType
	ID            string
	Score         int
	Strand        string
	ThickStart    interval.PosType
	ThickEnd      interval.PosType
	Color         string
	NumExons      int
	ExonLengths   []interval.PosType
	ExonRelStarts []interval.PosType
}

// Exons returns the absolute genomic interval of every block of r.
func (r *Record) Exons() []interval.Entry {
	exons := make([]interval.Entry, len(r.ExonLengths))
	for i := range r.ExonLengths {
		start := r.Start + r.ExonRelStarts[i]
		exons[i] = interval.Entry{ChrName: r.Seqname, Start0: start, End: start + r.ExonLengths[i]}
	}
	return exons
}
