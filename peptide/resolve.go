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
	"fmt"
	"strconv"

	"blainsmith.com/go/seahash"
	"github.com/eboileau/pproc/encoding/bed"
	"github.com/eboileau/pproc/interval"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// footprint holds every field of an aggregated record except the id and the
// color.  Two alignments of a peptide are the same iff their footprints are
// equal.  The block lists are kept in their comma-joined form so that
// footprint is comparable with ==.
type footprint struct {
	seqname       string
	start, end    interval.PosType
	score         int
	strand        string
	thickStart    interval.PosType
	thickEnd      interval.PosType
	numExons      int
	exonLengths   string
	exonRelStarts string
}

func joinPos(v []interval.PosType) string {
	buf := make([]byte, 0, 8*len(v))
	for i, x := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(x), 10)
	}
	return string(buf)
}

func footprintOf(r *bed.Record) footprint {
	return footprint{
		seqname:       r.Seqname,
		start:         r.Start,
		end:           r.End,
		score:         r.Score,
		strand:        r.Strand,
		thickStart:    r.ThickStart,
		thickEnd:      r.ThickEnd,
		numExons:      r.NumExons,
		exonLengths:   joinPos(r.ExonLengths),
		exonRelStarts: joinPos(r.ExonRelStarts),
	}
}

// Stats summarizes a conversion.
type Stats struct {
	// Rows is the number of input rows.
	Rows int
	// Alignments is the number of aggregated records (composite keys).
	Alignments int
	// Peptides is the number of distinct peptide ids.
	Peptides int
	// Unique is the number of peptides emitted.
	Unique int
	// Ambiguous is the number of peptides dropped because their alignments
	// disagree.
	Ambiguous int
	// SharedStart is the number of peptides dropped because one of their
	// alignments has two exons beginning at the same position.
	SharedStart int
	// CoveredBases is the number of genomic positions covered by the blocks
	// of the emitted peptides.
	CoveredBases int
}

func (s Stats) String() string {
	return fmt.Sprintf("rows: %d, alignments: %d, peptides: %d, unique: %d, ambiguous: %d, shared start: %d, covered bases: %d",
		s.Rows, s.Alignments, s.Peptides, s.Unique, s.Ambiguous, s.SharedStart, s.CoveredBases)
}

// peptideGroup lists the alignments (by index) of one peptide id.
type peptideGroup struct {
	id         string
	alignments []int
}

type verdict int

const (
	keep verdict = iota
	dropAmbiguous
	dropSharedStart
)

// resolveGroup returns the canonical record of g, or the reason g is dropped.
func resolveGroup(alignments []Alignment, g peptideGroup) (bed.Record, verdict) {
	for _, i := range g.alignments {
		if alignments[i].SharedStart {
			return bed.Record{}, dropSharedStart
		}
	}
	first := &alignments[g.alignments[0]].Record
	want := footprintOf(first)
	for _, i := range g.alignments[1:] {
		if footprintOf(&alignments[i].Record) != want {
			return bed.Record{}, dropAmbiguous
		}
	}
	rec := *first
	rec.ID = g.id
	rec.Color = "0"
	rec.ExonLengths = append([]interval.PosType(nil), first.ExonLengths...)
	rec.ExonRelStarts = append([]interval.PosType(nil), first.ExonRelStarts...)
	return rec, keep
}

// shardOf assigns a peptide id to one of n shards.
func shardOf(id string, n int) int {
	if n == 1 {
		return 0
	}
	return int(seahash.Sum64([]byte(id)) % uint64(n))
}

// Resolve groups alignments by peptide id.  A group whose alignments have
// equal footprints yields one record, with the bare peptide id and color "0";
// any other group is dropped entirely, as is a group with an alignment
// flagged SharedStart.  Peptide groups are partitioned into opts.Shards hash
// shards that are resolved in parallel.  The result is sorted by (seqname,
// start, strand) and does not depend on the shard count.  alignments is not
// modified.  The only error is the cancellation of ctx.
func Resolve(ctx context.Context, alignments []Alignment, opts Opts) ([]bed.Record, Stats, error) {
	index := make(map[string]int)
	var groups []peptideGroup
	for i := range alignments {
		id := alignments[i].Peptide
		gi, ok := index[id]
		if !ok {
			gi = len(groups)
			index[id] = gi
			groups = append(groups, peptideGroup{id: id})
		}
		groups[gi].alignments = append(groups[gi].alignments, i)
	}

	nShards := opts.shards()
	shards := make([][]peptideGroup, nShards)
	for _, g := range groups {
		s := shardOf(g.id, nShards)
		shards[s] = append(shards[s], g)
	}
	results := make([][]bed.Record, nShards)
	dropped := make([][dropSharedStart + 1]int, nShards)
	err := traverse.Limit(opts.parallelism()).Each(nShards, func(s int) error {
		for _, g := range shards[s] {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, v := resolveGroup(alignments, g)
			switch v {
			case keep:
				results[s] = append(results[s], rec)
				continue
			case dropAmbiguous:
				if log.At(log.Debug) {
					log.Debug.Printf("peptide %s: %d alignments with different footprints, dropped", g.id, len(g.alignments))
				}
			case dropSharedStart:
				if log.At(log.Debug) {
					log.Debug.Printf("peptide %s: alignment with exons sharing a start, dropped", g.id)
				}
			}
			dropped[s][v]++
		}
		return nil
	})
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{Peptides: len(groups)}
	records := make([]bed.Record, 0, len(groups))
	for s := range results {
		records = append(records, results[s]...)
		stats.Ambiguous += dropped[s][dropAmbiguous]
		stats.SharedStart += dropped[s][dropSharedStart]
	}
	stats.Unique = len(records)
	bed.SortRecords(records)
	return records, stats, nil
}
