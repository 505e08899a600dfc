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

/*
Package peptide converts peptide-to-genome alignments, given as single-exon
BED6 rows, into one BED12 record per peptide, and drops peptides whose
alignments are ambiguous.

The conversion runs in four stages, each producing a new table:

  1. Normalize assigns each row the composite key id&seqname&strand, which
     identifies one alignment instance (one locus, one strand).
  2. Aggregate merges the rows of each alignment instance into a BED12-shaped
     record with one block per exon.
  3. Resolve groups the aggregated records by peptide id.  A peptide whose
     records all agree on every field but the id is emitted once; a peptide
     that maps to different genomic footprints is dropped as a whole, as is
     a peptide with an alignment whose exons share a start.
  4. The result is sorted by (seqname, start, strand) and written by
     encoding/bed.

Convert and ConvertFile run the whole pipeline.
*/
package peptide
