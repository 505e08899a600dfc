// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package peptide

import (
	"context"

	"github.com/eboileau/pproc/encoding/bed"
	"github.com/eboileau/pproc/interval"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"
)

// Alignment is the aggregated record of one composite key.  Record.ID is the
// composite key.
type Alignment struct {
	bed.Record
	// Peptide is the id the composite key was built from.
	Peptide string
	// SharedStart is set when two distinct exons of the alignment begin at the
	// same position.  The record then lists both blocks, and its block starts
	// are not strictly increasing.
	SharedStart bool
}

// exonGroup holds the rows sharing one composite key, i.e. the exons of one
// alignment instance.
type exonGroup struct {
	key     string
	peptide string
	rows    []Row
}

// groupByKey partitions rows by ID.  Groups are returned in order of first
// appearance, and rows keep their relative order within a group.
func groupByKey(rows []Row) []exonGroup {
	index := make(map[string]int)
	var groups []exonGroup
	for _, r := range rows {
		gi, ok := index[r.ID]
		if !ok {
			gi = len(groups)
			index[r.ID] = gi
			groups = append(groups, exonGroup{key: r.ID, peptide: r.Peptide})
		}
		groups[gi].rows = append(groups[gi].rows, r)
	}
	return groups
}

// aggregateGroup merges the exons of g into one record.  The record spans the
// outer bounds of the exons, and the thick region equals the full span.
func aggregateGroup(g exonGroup) (Alignment, error) {
	exons := make([]interval.Entry, len(g.rows))
	for i, r := range g.rows {
		exons[i] = r.Entry()
	}
	blocks, err := interval.NewBlocks(exons)
	if err != nil {
		return Alignment{}, errors.E(err, "alignment", g.key)
	}
	first := &g.rows[0]
	return Alignment{
		Record: bed.Record{
			Seqname:       first.Seqname,
			Start:         blocks.Start,
			End:           blocks.End,
			ID:            g.key,
			Score:         first.Score,
			Strand:        first.Strand,
			ThickStart:    blocks.Start,
			ThickEnd:      blocks.End,
			NumExons:      blocks.Len(),
			ExonLengths:   blocks.Lengths,
			ExonRelStarts: blocks.RelStarts,
		},
		Peptide:     g.peptide,
		SharedStart: !blocks.Increasing(),
	}, nil
}

// Aggregate merges every group of rows sharing an ID into one BED12-shaped
// alignment.  rows are normally the output of Normalize.  Groups are
// independent and are processed in parallel; the result lists groups in order
// of first appearance regardless of scheduling.  A degenerate exon (end <=
// start) yields an errors.Invalid error; when several groups are malformed,
// the error of the earliest one is returned.  Exons sharing a start are not an
// error here: the alignment is flagged and Resolve drops its peptide.
func Aggregate(ctx context.Context, rows []Row, opts Opts) ([]Alignment, error) {
	groups := groupByKey(rows)
	alignments := make([]Alignment, len(groups))
	errs := make([]error, len(groups))
	err := traverse.Limit(opts.parallelism()).Each(len(groups), func(i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		alignments[i], errs[i] = aggregateGroup(groups[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return alignments, nil
}
