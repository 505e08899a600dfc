package bed

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/bgzf"
	"github.com/klauspost/compress/gzip"
)

// Compression selects the on-disk encoding of a BED12 file.
type Compression string

const (
	// CompressAuto picks CompressBGZF for .gz/.bgz paths, CompressNone
	// otherwise.
	CompressAuto Compression = "auto"
	// CompressNone writes plain text.
	CompressNone Compression = "none"
	// CompressGzip writes a single gzip member.
	CompressGzip Compression = "gzip"
	// CompressBGZF writes block-gzipped output.  It is readable by any gzip
	// decoder and can be indexed with tabix.
	CompressBGZF Compression = "bgzf"
)

// ParseCompression parses a -compression flag value.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(s)); c {
	case "", CompressAuto:
		return CompressAuto, nil
	case CompressNone, CompressGzip, CompressBGZF:
		return c, nil
	}
	return "", errors.E(errors.Invalid, fmt.Sprintf("bed.ParseCompression: unknown compression %q", s))
}

// CompressionForPath resolves CompressAuto for the given output path.
func CompressionForPath(path string) Compression {
	if strings.HasSuffix(path, ".gz") || strings.HasSuffix(path, ".bgz") {
		return CompressBGZF
	}
	return CompressNone
}

// WriteOpts defines behavior of the BED12 writer.
type WriteOpts struct {
	Compression Compression
	// Parallelism is the number of bgzf compression workers.  0 means
	// runtime.NumCPU().
	Parallelism int
}

// Writer writes BED12 Records as tab-separated lines, without a header.
type Writer struct {
	tsv      *tsv.Writer
	zw       io.WriteCloser
	nRecords int
}

// NewWriter creates a Writer on out.  opts.Compression must not be
// CompressAuto.  Close must be called to flush; it does not close out.
func NewWriter(out io.Writer, opts WriteOpts) (*Writer, error) {
	w := &Writer{}
	switch opts.Compression {
	case CompressNone:
	case CompressGzip:
		w.zw = gzip.NewWriter(out)
	case CompressBGZF:
		wc := opts.Parallelism
		if wc < 1 {
			wc = runtime.NumCPU()
		}
		w.zw = bgzf.NewWriter(out, wc)
	default:
		return nil, errors.E(errors.Invalid, fmt.Sprintf("bed.NewWriter: unsupported compression %q", opts.Compression))
	}
	if w.zw != nil {
		out = w.zw
	}
	w.tsv = tsv.NewWriter(out)
	return w, nil
}

// Write appends one line.  The block lists of r must have NumExons entries
// each.
func (w *Writer) Write(r *Record) error {
	if r.NumExons < 1 || len(r.ExonLengths) != r.NumExons || len(r.ExonRelStarts) != r.NumExons {
		return errors.E(errors.Invalid, fmt.Sprintf("bed.Writer: %s: num_exons %d, %d lengths, %d starts",
			r.ID, r.NumExons, len(r.ExonLengths), len(r.ExonRelStarts)))
	}
	t := w.tsv
	t.WriteString(r.Seqname)
	t.WriteUint32(uint32(r.Start))
	t.WriteUint32(uint32(r.End))
	t.WriteString(r.ID)
	t.WriteString(strconv.Itoa(r.Score))
	t.WriteString(r.Strand)
	t.WriteUint32(uint32(r.ThickStart))
	t.WriteUint32(uint32(r.ThickEnd))
	t.WriteString(r.Color)
	t.WriteUint32(uint32(r.NumExons))
	for _, l := range r.ExonLengths {
		t.WriteCsvUint32(uint32(l))
	}
	t.EndCsv()
	for _, s := range r.ExonRelStarts {
		t.WriteCsvUint32(uint32(s))
	}
	t.EndCsv()
	w.nRecords++
	return t.EndLine()
}

// Close flushes buffered lines and terminates the compressed stream.
func (w *Writer) Close() error {
	err := w.tsv.Flush()
	if w.zw != nil {
		if e := w.zw.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// WriteBED12File writes records to path, creating or truncating it.
func WriteBED12File(ctx context.Context, path string, records []Record, opts WriteOpts) (err error) {
	if opts.Compression == CompressAuto || opts.Compression == "" {
		opts.Compression = CompressionForPath(path)
	}
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return errors.E(err, "bed.WriteBED12File:", path)
	}
	defer file.CloseAndReport(ctx, out, &err)

	var w *Writer
	if w, err = NewWriter(out.Writer(ctx), opts); err != nil {
		return
	}
	for i := range records {
		if err = w.Write(&records[i]); err != nil {
			_ = w.Close()
			return errors.E(err, path)
		}
	}
	if err = w.Close(); err != nil {
		return errors.E(err, path)
	}
	log.Printf("%s: wrote %d BED12 record(s) (%s)", path, w.nRecords, opts.Compression)
	return
}
