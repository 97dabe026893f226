package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter buffers records and writes them as a YAML sequence.
type YAMLWriter struct {
	w       *bufio.Writer
	records []Record
	written bool
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:       bufio.NewWriter(w),
		records: make([]Record, 0),
	}
}

// Write buffers a single record.
func (w *YAMLWriter) Write(r Record) error {
	w.records = append(w.records, r)
	return nil
}

// WriteAll buffers records in order.
func (w *YAMLWriter) WriteAll(rs []Record) error {
	w.records = append(w.records, rs...)
	return nil
}

// Flush writes the buffered records.
func (w *YAMLWriter) Flush() error {
	if w.written && len(w.records) == 0 {
		return w.w.Flush()
	}
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(w.records); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	w.records = w.records[:0]
	w.written = true
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
