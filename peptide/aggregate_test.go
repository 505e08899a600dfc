package peptide

import (
	"context"
	"math/rand"
	"testing"

	"github.com/eboileau/pproc/encoding/bed"
	"github.com/eboileau/pproc/interval"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	rows := []bed.ExonRow{
		{Seqname: "chr2", Start: 10, End: 20, ID: "pepC", Score: 5, Strand: "+"},
		{Seqname: "chr1", Start: 130, End: 150, ID: "pepB", Score: 3, Strand: "+"},
		{Seqname: "chr1", Start: 100, End: 120, ID: "pepB", Score: 3, Strand: "+"},
	}
	orig := append([]bed.ExonRow(nil), rows...)
	got := Normalize(rows)
	expect.EQ(t, got, []Row{
		{bed.ExonRow{Seqname: "chr1", Start: 100, End: 120, ID: "pepB&chr1&+", Score: 0, Strand: "+"}, "pepB"},
		{bed.ExonRow{Seqname: "chr1", Start: 130, End: 150, ID: "pepB&chr1&+", Score: 0, Strand: "+"}, "pepB"},
		{bed.ExonRow{Seqname: "chr2", Start: 10, End: 20, ID: "pepC&chr2&+", Score: 0, Strand: "+"}, "pepC"},
	})
	expect.EQ(t, rows, orig)
}

func TestAggregate(t *testing.T) {
	rows := Normalize([]bed.ExonRow{
		{Seqname: "chr1", Start: 130, End: 150, ID: "pepB", Score: 0, Strand: "+"},
		{Seqname: "chr1", Start: 100, End: 150, ID: "pepA", Score: 0, Strand: "+"},
		{Seqname: "chr1", Start: 100, End: 120, ID: "pepB", Score: 0, Strand: "+"},
		{Seqname: "chr1", Start: 100, End: 120, ID: "pepB", Score: 0, Strand: "-"},
	})
	got, err := Aggregate(context.Background(), rows, Opts{Parallelism: 2})
	assert.NoError(t, err)
	// Groups appear in the order of their first row after sorting.
	expect.EQ(t, got, []Alignment{
		{
			Record: bed.Record{
				Seqname: "chr1", Start: 100, End: 150, ID: "pepB&chr1&+", Strand: "+",
				ThickStart: 100, ThickEnd: 150, NumExons: 2,
				ExonLengths: []interval.PosType{20, 20}, ExonRelStarts: []interval.PosType{0, 30},
			},
			Peptide: "pepB",
		},
		{
			Record: bed.Record{
				Seqname: "chr1", Start: 100, End: 150, ID: "pepA&chr1&+", Strand: "+",
				ThickStart: 100, ThickEnd: 150, NumExons: 1,
				ExonLengths: []interval.PosType{50}, ExonRelStarts: []interval.PosType{0},
			},
			Peptide: "pepA",
		},
		{
			Record: bed.Record{
				Seqname: "chr1", Start: 100, End: 120, ID: "pepB&chr1&-", Strand: "-",
				ThickStart: 100, ThickEnd: 120, NumExons: 1,
				ExonLengths: []interval.PosType{20}, ExonRelStarts: []interval.PosType{0},
			},
			Peptide: "pepB",
		},
	})
}

func TestAggregateDuplicateExons(t *testing.T) {
	// A repeated exon row is one block, so num_exons counts distinct exons.
	rows := Normalize([]bed.ExonRow{
		{Seqname: "chr1", Start: 100, End: 120, ID: "pepB", Score: 0, Strand: "+"},
		{Seqname: "chr1", Start: 100, End: 120, ID: "pepB", Score: 0, Strand: "+"},
		{Seqname: "chr1", Start: 130, End: 150, ID: "pepB", Score: 0, Strand: "+"},
	})
	got, err := Aggregate(context.Background(), rows, DefaultOpts)
	assert.NoError(t, err)
	require.Len(t, got, 1)
	expect.EQ(t, got[0].NumExons, 2)
	expect.EQ(t, got[0].ExonLengths, []interval.PosType{20, 20})
	expect.EQ(t, got[0].ExonRelStarts, []interval.PosType{0, 30})
	expect.False(t, got[0].SharedStart)
}

func TestAggregateSharedStart(t *testing.T) {
	ctx := context.Background()
	rows := Normalize([]bed.ExonRow{
		{Seqname: "chr1", Start: 100, End: 120, ID: "pepB", Score: 0, Strand: "+"},
		{Seqname: "chr1", Start: 100, End: 125, ID: "pepB", Score: 0, Strand: "+"},
		{Seqname: "chr9", Start: 1, End: 50, ID: "pepZ", Score: 0, Strand: "+"},
	})
	got, err := Aggregate(ctx, rows, DefaultOpts)
	assert.NoError(t, err)
	require.Len(t, got, 2)
	expect.EQ(t, got[0].Peptide, "pepB")
	expect.True(t, got[0].SharedStart)
	expect.EQ(t, got[0].ExonLengths, []interval.PosType{20, 25})
	expect.EQ(t, got[0].ExonRelStarts, []interval.PosType{0, 0})
	expect.False(t, got[1].SharedStart)

	// Only the peptide with the offending alignment is dropped.
	records, stats, err := Resolve(ctx, got, DefaultOpts)
	assert.NoError(t, err)
	require.Len(t, records, 1)
	expect.EQ(t, records[0].ID, "pepZ")
	expect.EQ(t, stats.Peptides, 2)
	expect.EQ(t, stats.Unique, 1)
	expect.EQ(t, stats.SharedStart, 1)
	expect.EQ(t, stats.Ambiguous, 0)
}

func TestAggregateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Aggregate(ctx, Normalize([]bed.ExonRow{{Seqname: "chr1", Start: 100, End: 120, ID: "pepA", Score: 0, Strand: "+"}}), DefaultOpts)
	expect.EQ(t, err, context.Canceled)
}

func TestAggregateDegenerate(t *testing.T) {
	rows := Normalize([]bed.ExonRow{
		{Seqname: "chr1", Start: 100, End: 120, ID: "pepA", Score: 0, Strand: "+"},
		{Seqname: "chr1", Start: 150, End: 150, ID: "pepB", Score: 0, Strand: "+"},
	})
	_, err := Aggregate(context.Background(), rows, DefaultOpts)
	require.Error(t, err)
	expect.True(t, errors.Is(errors.Invalid, err), "%v", err)
}

// randomAlignment returns the exons of one alignment with distinct starts.
func randomAlignment(r *rand.Rand, id string) []bed.ExonRow {
	n := 1 + r.Intn(8)
	seen := map[interval.PosType]bool{}
	var rows []bed.ExonRow
	for len(rows) < n {
		start := interval.PosType(r.Intn(10000))
		if seen[start] {
			continue
		}
		seen[start] = true
		end := start + 1 + interval.PosType(r.Intn(300))
		rows = append(rows, bed.ExonRow{Seqname: "chr7", Start: start, End: end, ID: id, Strand: "-"})
	}
	return rows
}

func TestAggregateProperties(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for iter := 0; iter < 200; iter++ {
		rows := randomAlignment(r, "pep")
		want, err := Aggregate(context.Background(), Normalize(rows), Opts{Parallelism: 1})
		assert.NoError(t, err)
		require.Len(t, want, 1)
		rec := want[0].Record
		expect.False(t, want[0].SharedStart)

		// Permuting the input rows does not change the result.
		shuffled := append([]bed.ExonRow(nil), rows...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got, err := Aggregate(context.Background(), Normalize(shuffled), Opts{Parallelism: 4})
		assert.NoError(t, err)
		expect.EQ(t, got, want)

		expect.EQ(t, rec.NumExons, len(rows))
		expect.EQ(t, len(rec.ExonLengths), rec.NumExons)
		expect.EQ(t, len(rec.ExonRelStarts), rec.NumExons)

		// Block lengths add up to the exon widths.
		var sumLengths, sumWidths interval.PosType
		for _, l := range rec.ExonLengths {
			sumLengths += l
		}
		for _, row := range rows {
			sumWidths += row.End - row.Start
		}
		expect.EQ(t, sumLengths, sumWidths)

		// Starts are strictly increasing, the first block starts at Start and
		// no block ends past End.
		expect.EQ(t, rec.ExonRelStarts[0], interval.PosType(0))
		for i := range rec.ExonRelStarts {
			if i > 0 {
				expect.True(t, rec.ExonRelStarts[i] > rec.ExonRelStarts[i-1], "%v", rec.ExonRelStarts)
			}
			expect.True(t, rec.Start+rec.ExonRelStarts[i]+rec.ExonLengths[i] <= rec.End, "%+v", rec)
		}
		last := rec.NumExons - 1
		expect.True(t, rec.End-rec.Start >= rec.ExonRelStarts[last]+rec.ExonLengths[last], "%+v", rec)
		expect.EQ(t, rec.ThickStart, rec.Start)
		expect.EQ(t, rec.ThickEnd, rec.End)
	}
}
