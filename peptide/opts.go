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
	"runtime"

	"github.com/eboileau/pproc/encoding/bed"
)

// Opts controls a conversion.
type Opts struct {
	// SkipRows is the number of leading input lines to discard.
	SkipRows int
	// Parallelism bounds the number of alignment groups and peptide shards
	// processed concurrently, and the number of bgzf compression workers.
	// 0 means runtime.NumCPU().
	Parallelism int
	// Shards is the number of peptide-id hash partitions resolved
	// independently.  Values < 1 are treated as 1.
	Shards int
	// Compression is the output encoding.
	Compression bed.Compression
}

// DefaultOpts sets the default values of Opts.
var DefaultOpts = Opts{
	SkipRows:    0,
	Parallelism: 0,
	Shards:      1,
	Compression: bed.CompressAuto,
}

func (o Opts) parallelism() int {
	if o.Parallelism < 1 {
		return runtime.NumCPU()
	}
	return o.Parallelism
}

func (o Opts) shards() int {
	if o.Shards < 1 {
		return 1
	}
	return o.Shards
}
