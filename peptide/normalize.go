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
	"github.com/eboileau/pproc/encoding/bed"
)

// Row is a normalized BED6 row.  ID holds the composite key of the row and
// Peptide the id it was built from.
type Row struct {
	bed.ExonRow
	Peptide string
}

// Normalize returns a copy of rows with Score forced to 0 and ID replaced by
// its CompositeKey, sorted by (seqname, start, strand).  rows is not modified.
func Normalize(rows []bed.ExonRow) []Row {
	sorted := make([]bed.ExonRow, len(rows))
	for i, r := range rows {
		// Peptide BED6 scores carry no meaning.
		r.Score = 0
		sorted[i] = r
	}
	bed.SortExonRows(sorted)
	out := make([]Row, len(sorted))
	for i, r := range sorted {
		out[i].Peptide = r.ID
		r.ID = CompositeKey(r.ID, r.Seqname, r.Strand)
		out[i].ExonRow = r
	}
	return out
}
