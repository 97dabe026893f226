package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// newEncoder returns an encoder that leaves replacement tokens such as
// <URL> readable instead of escaping the angle brackets.
func newEncoder(w io.Writer, indent string) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc
}

// JSONWriter buffers records and writes them as one JSON array.
type JSONWriter struct {
	w       *bufio.Writer
	pretty  bool
	indent  string
	records []Record
	written bool
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:       bufio.NewWriter(w),
		pretty:  pretty,
		indent:  indent,
		records: make([]Record, 0),
	}
}

// Write buffers a single record.
func (w *JSONWriter) Write(r Record) error {
	w.records = append(w.records, r)
	return nil
}

// WriteAll buffers records in order.
func (w *JSONWriter) WriteAll(rs []Record) error {
	w.records = append(w.records, rs...)
	return nil
}

// Flush writes the buffered records as a JSON array. An empty batch is
// written as [] once; later flushes without new records write nothing.
func (w *JSONWriter) Flush() error {
	if w.written && len(w.records) == 0 {
		return w.w.Flush()
	}
	indent := ""
	if w.pretty {
		indent = w.indent
	}
	if err := newEncoder(w.w, indent).Encode(w.records); err != nil {
		return err
	}
	w.records = w.records[:0]
	w.written = true
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes newline-delimited JSON (JSONL), one record per line.
type JSONLWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)
	return &JSONLWriter{
		w:   bw,
		enc: newEncoder(bw, ""),
	}
}

// Write writes a single record as a JSON line.
func (w *JSONLWriter) Write(r Record) error {
	if err := w.enc.Encode(r); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteAll writes records as JSON lines.
func (w *JSONLWriter) WriteAll(rs []Record) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}
