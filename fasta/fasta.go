package fasta

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/TuftsBCB/seq"
)

// StringCols returns the FASTA string corresponding to the sequence given
// with its residues wrapped at the number of columns given.
//
// If cols is <= 0, then no wrapping is done.
func StringCols(s seq.Sequence, cols int) string {
	rs := make([]byte, len(s.Residues))
	for i, r := range s.Residues {
		rs[i] = byte(r)
	}
	if cols <= 0 || len(rs) == 0 {
		return fmt.Sprintf(">%s\n%s", s.Name, string(rs))
	}

	wrapped := make([]string, 1+((len(rs)-1)/cols))
	for i := range wrapped {
		start := cols * i
		end := start + cols
		if end > len(rs) {
			end = len(rs)
		}
		wrapped[i] = string(rs[start:end])
	}
	return fmt.Sprintf(">%s\n%s", s.Name, strings.Join(wrapped, "\n"))
}

// A Writer writes sequences to a FASTA encoded file.
//
// The header text is never wrapped.
type Writer struct {
	// The number of columns to wrap a sequence at. By default, this
	// is set to 60. A value <= 0 will result in no wrapping.
	Columns int
	buf     *bufio.Writer
}

// NewWriter creates a new FASTA writer that can write sequences to an
// io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		Columns: 60,
		buf:     bufio.NewWriter(w),
	}
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Write writes a single sequence to the underlying io.Writer.
//
// You may need to call Flush in order for the changes to be written.
func (w *Writer) Write(s seq.Sequence) error {
	_, err := w.buf.WriteString(StringCols(s, w.Columns) + "\n")
	return err
}

// WriteAll writes a slice of sequences to the underyling io.Writer, and
// calls Flush.
func (w *Writer) WriteAll(seqs []seq.Sequence) error {
	for _, s := range seqs {
		if err := w.Write(s); err != nil {
			return err
		}
	}
	return w.Flush()
}
