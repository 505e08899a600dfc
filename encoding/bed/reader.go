package bed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/eboileau/pproc/interval"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
)

// ReadOpts defines behavior of the BED6 reader.
type ReadOpts struct {
	// SkipRows is the number of leading lines (e.g. headers) to discard.
	SkipRows int
}

// bed6Line is the raw layout of a BED6 line, in BED6Fields order.  Score is
// kept as text since peptide BED6 files may carry "." there.
type bed6Line struct {
	Seqname string
	Start   int64
	End     int64
	ID      string
	Score   string
	Strand  string
}

// Reader reads ExonRows from a BED6 stream.
type Reader struct {
	r      *tsv.Reader
	opts   ReadOpts
	rowIdx int
	line   bed6Line
}

// skipLine discards input up to and including the next newline.
func skipLine(br *bufio.Reader) error {
	for {
		_, err := br.ReadSlice('\n')
		if err != bufio.ErrBufferFull {
			return err
		}
	}
}

// NewReader creates a Reader on in, after discarding opts.SkipRows lines.
func NewReader(in io.Reader, opts ReadOpts) (*Reader, error) {
	br := bufio.NewReaderSize(in, 64<<10)
	for i := 0; i < opts.SkipRows; i++ {
		if err := skipLine(br); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(err, "bed.NewReader: skip rows")
		}
	}
	r := tsv.NewReader(br)
	r.LazyQuotes = true
	r.FieldsPerRecord = len(BED6Fields)
	return &Reader{r: r, opts: opts}, nil
}

// Read returns the next row.  It returns io.EOF at the end of the input, and
// an errors.Invalid error for a malformed line.
func (r *Reader) Read() (row ExonRow, err error) {
	if err = r.r.Read(&r.line); err != nil {
		if err == io.EOF {
			return
		}
		err = errors.E(errors.Invalid, fmt.Sprintf("bed.Reader: row %d", r.opts.SkipRows+r.rowIdx+1), err)
		return
	}
	r.rowIdx++
	return r.parse()
}

func (r *Reader) invalid(msg string) error {
	return errors.E(errors.Invalid, fmt.Sprintf("bed.Reader: row %d: %s", r.opts.SkipRows+r.rowIdx, msg))
}

func (r *Reader) parse() (row ExonRow, err error) {
	l := &r.line
	if l.Seqname == "" || l.ID == "" {
		err = r.invalid("empty seqname or id")
		return
	}
	if l.Start < 0 || l.End >= interval.PosTypeMax {
		err = r.invalid(fmt.Sprintf("coordinates [%d, %d) out of range", l.Start, l.End))
		return
	}
	if l.End <= l.Start {
		err = r.invalid(fmt.Sprintf("degenerate interval [%d, %d)", l.Start, l.End))
		return
	}
	if l.Strand != StrandForward && l.Strand != StrandReverse {
		err = r.invalid(fmt.Sprintf("invalid strand %q", l.Strand))
		return
	}
	score := 0
	if l.Score != "." {
		if score, err = strconv.Atoi(l.Score); err != nil {
			err = r.invalid(fmt.Sprintf("invalid score %q", l.Score))
			return
		}
	}
	row = ExonRow{
		Seqname: l.Seqname,
		Start:   interval.PosType(l.Start),
		End:     interval.PosType(l.End),
		ID:      l.ID,
		Score:   score,
		Strand:  l.Strand,
	}
	return
}

// ReadAll reads rows until the end of the input.  Any error aborts the read;
// no partial result is returned.
func (r *Reader) ReadAll() ([]ExonRow, error) {
	var rows []ExonRow
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// ReadBED6FromPath is a wrapper for Reader.ReadAll that takes a path instead
// of an io.Reader.  Gzip (and bgzf) input is detected from the path.
func ReadBED6FromPath(ctx context.Context, path string, opts ReadOpts) (rows []ExonRow, err error) {
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		err = errors.E(err, "bed.ReadBED6FromPath:", path)
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	in := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(in); err != nil {
			err = errors.E(errors.Invalid, err, "bed.ReadBED6FromPath:", path)
			return
		}
		defer gz.Close() // nolint: errcheck
		in = gz
	}
	var r *Reader
	if r, err = NewReader(in, opts); err != nil {
		return
	}
	if rows, err = r.ReadAll(); err != nil {
		err = errors.E(err, path)
		return
	}
	log.Printf("%s: read %d BED6 row(s)", path, len(rows))
	return
}
