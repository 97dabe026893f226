package output

import (
	"bufio"
	"io"
)

// TextWriter writes the bare cleaned text of each record on its own line.
type TextWriter struct {
	w          *bufio.Writer
	blankLines bool
	n          int
}

// NewTextWriter creates a text writer. With blankLines set, records are
// separated by an empty line.
func NewTextWriter(w io.Writer, blankLines bool) *TextWriter {
	return &TextWriter{
		w:          bufio.NewWriter(w),
		blankLines: blankLines,
	}
}

// Write writes one record followed by a newline.
func (w *TextWriter) Write(r Record) error {
	if w.n > 0 && w.blankLines {
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if _, err := w.w.WriteString(r.Text); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.n++
	return nil
}

// WriteAll writes records in order.
func (w *TextWriter) WriteAll(rs []Record) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}
