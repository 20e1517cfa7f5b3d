package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter buffers results and flushes them as one JSON document. A
// single result is emitted bare; two or more become a JSON array, so a
// one-profile normalization run stays a plain object.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	items  []any
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
		// non-nil so an empty run flushes [] rather than null
		items: make([]any, 0),
	}
}

// Write buffers one result for the final document.
func (w *JSONWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

// WriteAll buffers multiple results.
func (w *JSONWriter) WriteAll(data []any) error {
	w.items = append(w.items, data...)
	return nil
}

// payload returns what Flush serializes: the lone item, or the full slice.
func (w *JSONWriter) payload() any {
	if len(w.items) == 1 {
		return w.items[0]
	}
	return w.items
}

// Flush serializes the buffered results and writes them out.
func (w *JSONWriter) Flush() error {
	var out []byte
	var err error
	if w.pretty {
		out, err = json.MarshalIndent(w.payload(), "", w.indent)
	} else {
		out, err = json.Marshal(w.payload())
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes one JSON line per result, unbuffered across results.
// Suited to large batch runs where consumers stream records line by line.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write serializes one result onto its own line.
func (w *JSONLWriter) Write(data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteAll writes multiple results, one line each.
func (w *JSONLWriter) WriteAll(data []any) error {
	for _, item := range data {
		if err := w.Write(item); err != nil {
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
