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

const keySep = "&"

// CompositeKey returns the key identifying one alignment instance of peptide
// id: id&seqname&strand.  The key is never parsed back; the bare id travels
// next to it in Row and Alignment.
func CompositeKey(id, seqname, strand string) string {
	return id + keySep + seqname + keySep + strand
}
