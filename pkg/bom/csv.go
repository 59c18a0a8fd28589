package bom

import (
	"bufio"
	"io"
	"strings"
)

// CSVWriter writes records with every field double-quoted, embedded quotes
// doubled, ',' between fields and '\n' after each record.
type CSVWriter struct {
	w   *bufio.Writer
	err error
}

// NewCSVWriter returns a writer that buffers output to w
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: bufio.NewWriter(w)}
}

// Write writes one record. After the first error every call is a no-op
// returning that error.
func (cw *CSVWriter) Write(record []string) error {
	if cw.err != nil {
		return cw.err
	}
	for i, field := range record {
		if i > 0 {
			cw.w.WriteByte(',')
		}
		cw.w.WriteByte('"')
		cw.w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		cw.w.WriteByte('"')
	}
	_, cw.err = cw.w.WriteString("\n")
	return cw.err
}

// WriteHeader writes the header row for a FieldSet
func (cw *CSVWriter) WriteHeader(fields []string) error {
	return cw.Write(HeaderNames(fields))
}

// WriteRow writes one BOM row
func (cw *CSVWriter) WriteRow(r Row) error {
	return cw.Write(r.Record())
}

// Flush writes buffered data to the underlying writer
func (cw *CSVWriter) Flush() error {
	if cw.err != nil {
		return cw.err
	}
	cw.err = cw.w.Flush()
	return cw.err
}

// Error returns the first error seen by Write or Flush
func (cw *CSVWriter) Error() error {
	return cw.err
}
