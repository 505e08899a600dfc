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
	"github.com/grailbio/base/log"
)

// Convert runs Normalize, Aggregate and Resolve on rows.  It returns one
// record per unambiguous peptide, sorted by (seqname, start, strand).  An
// empty result is not an error.
func Convert(ctx context.Context, rows []bed.ExonRow, opts Opts) ([]bed.Record, Stats, error) {
	aggregated, err := Aggregate(ctx, Normalize(rows), opts)
	if err != nil {
		return nil, Stats{}, err
	}
	unique, stats, err := Resolve(ctx, aggregated, opts)
	if err != nil {
		return nil, Stats{}, err
	}
	stats.Rows = len(rows)
	stats.Alignments = len(aggregated)
	stats.CoveredBases = coveredBases(unique)
	return unique, stats, nil
}

func coveredBases(records []bed.Record) int {
	var exons []interval.Entry
	for i := range records {
		exons = append(exons, records[i].Exons()...)
	}
	return interval.NewUnion(exons).Len()
}

// ConvertFile reads BED6 rows from inPath, converts them, and writes the
// BED12 result to outPath.  The output is created only once the conversion
// has succeeded, so malformed input never leaves a partial file behind.
func ConvertFile(ctx context.Context, inPath, outPath string, opts Opts) (Stats, error) {
	rows, err := bed.ReadBED6FromPath(ctx, inPath, bed.ReadOpts{SkipRows: opts.SkipRows})
	if err != nil {
		return Stats{}, err
	}
	records, stats, err := Convert(ctx, rows, opts)
	if err != nil {
		return Stats{}, errors.E(err, inPath)
	}
	wopts := bed.WriteOpts{Compression: opts.Compression, Parallelism: opts.Parallelism}
	if err := bed.WriteBED12File(ctx, outPath, records, wopts); err != nil {
		return Stats{}, err
	}
	log.Printf("%s -> %s: %v", inPath, outPath, stats)
	return stats, nil
}
