package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jmylchreest/prospect/pkg/record"
)

// CSVWriter writes normalized profiles as flat CSV rows. The header is
// emitted once, before the first row.
type CSVWriter struct {
	w           *bufio.Writer
	wroteHeader bool
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{
		w: bufio.NewWriter(w),
	}
}

// Write writes one profile as a CSV row. Only *record.Profile values are
// accepted; the CSV contract has no representation for anything else.
func (w *CSVWriter) Write(data any) error {
	p, ok := data.(*record.Profile)
	if !ok {
		return fmt.Errorf("csv output requires a normalized profile, got %T", data)
	}

	if !w.wroteHeader {
		if _, err := w.w.WriteString(record.EncodeCSVRow(record.CSVHeader()) + "\n"); err != nil {
			return err
		}
		w.wroteHeader = true
	}

	if _, err := w.w.WriteString(record.EncodeCSVRow(p.CSVRow()) + "\n"); err != nil {
		return err
	}
	return nil
}

// WriteAll writes multiple profiles.
func (w *CSVWriter) WriteAll(data []any) error {
	for _, item := range data {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *CSVWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *CSVWriter) Close() error {
	return w.Flush()
}
