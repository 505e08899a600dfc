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
package main

/*
bio-pep-bed12 converts a BED6 list of peptide alignments to BED12, merging the
exons of each alignment into one record and removing peptides that map to
more than one genomic footprint.

Usage: bio-pep-bed12 [OPTIONS] input.bed output.bed.gz

If the output path has no directory component, it is written next to the
input file.
*/

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/eboileau/pproc/encoding/bed"
	"github.com/eboileau/pproc/peptide"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

var (
	skipRows    = flag.Int("skiprows", peptide.DefaultOpts.SkipRows, "Number of leading input lines to skip, including any header")
	compression = flag.String("compression", string(peptide.DefaultOpts.Compression), "Output compression; 'auto', 'bgzf', 'gzip' and 'none' supported. 'auto' uses bgzf for .gz paths")
	parallelism = flag.Int("parallelism", peptide.DefaultOpts.Parallelism, "Maximum number of concurrent workers; 0 = runtime.NumCPU()")
	shards      = flag.Int("shards", peptide.DefaultOpts.Shards, "Number of peptide-id hash shards resolved independently")
	overwrite   = flag.Bool("overwrite", false, "Overwrite the output file if it exists")
)

func bioPepBED12Usage() {
	fmt.Printf("Usage: %s [OPTIONS] input.bed output.bed.gz\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

// outputPath places a bare output file name in the directory of the input.
func outputPath(inPath, outPath string) string {
	if strings.Contains(outPath, "/") {
		return outPath
	}
	return file.Join(file.Dir(inPath), outPath)
}

// exists reports whether path exists.
func exists(ctx context.Context, path string) (bool, error) {
	_, err := file.Stat(ctx, path)
	if err == nil {
		return true, nil
	}
	if errors.Is(errors.NotExist, err) || os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func main() {
	flag.Usage = bioPepBED12Usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 2 {
		log.Fatalf("Expected input and output paths; got '%s'", strings.Join(flag.Args(), " "))
	}
	inPath := flag.Arg(0)
	outPath := outputPath(inPath, flag.Arg(1))

	comp, err := bed.ParseCompression(*compression)
	if err != nil {
		log.Fatalf("%v", err)
	}
	opts := peptide.Opts{
		SkipRows:    *skipRows,
		Parallelism: *parallelism,
		Shards:      *shards,
		Compression: comp,
	}
	if opts.SkipRows < 0 {
		log.Fatalf("-skiprows cannot be negative")
	}

	ctx := vcontext.Background()
	found, err := exists(ctx, outPath)
	if err != nil {
		log.Fatalf("stat %s: %v", outPath, err)
	}
	if found && !*overwrite {
		log.Error.Printf("Output file %s already exists. Skipping.", outPath)
		return
	}
	if _, err := peptide.ConvertFile(ctx, inPath, outPath, opts); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}
