package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jmylchreest/prospect/pkg/employment"
	"github.com/jmylchreest/prospect/pkg/entry"
	"github.com/jmylchreest/prospect/pkg/pipeline"
	"github.com/jmylchreest/prospect/pkg/profile"
	"github.com/jmylchreest/prospect/pkg/record"
)

var testNow = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func testProfile(t *testing.T, name string) *record.Profile {
	t.Helper()
	p, err := record.Build(record.BuildInput{
		Doc: &profile.RawExtraction{
			SourceURL:   "https://example.com/in/jane",
			ExtractedAt: testNow,
		},
		Personal: entry.Personal{Name: name, Headline: "Staff Engineer"},
		Summary: employment.Summary{
			Current: &employment.Record{
				Company: "Acme", Titles: []string{"Staff Engineer"},
				FirstStart:  &employment.YearMonth{Year: 2020, Month: 1},
				TotalMonths: 53, IsCurrent: true,
			},
			TotalYears: 4,
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func rejection(i int, reason string) pipeline.BatchResult {
	return pipeline.BatchResult{Index: i, RejectedReason: reason}
}

// --- NewWriter factory tests ---

func TestNewWriter_Formats(t *testing.T) {
	buf := &bytes.Buffer{}

	w, err := NewWriter(buf, FormatJSON)
	if err != nil {
		t.Fatalf("NewWriter(json) error = %v", err)
	}
	if _, ok := w.(*JSONWriter); !ok {
		t.Errorf("json: got %T", w)
	}

	w, err = NewWriter(buf, FormatJSONL)
	if err != nil {
		t.Fatalf("NewWriter(jsonl) error = %v", err)
	}
	if _, ok := w.(*JSONLWriter); !ok {
		t.Errorf("jsonl: got %T", w)
	}

	w, err = NewWriter(buf, FormatYAML)
	if err != nil {
		t.Fatalf("NewWriter(yaml) error = %v", err)
	}
	if _, ok := w.(*YAMLWriter); !ok {
		t.Errorf("yaml: got %T", w)
	}

	w, err = NewWriter(buf, FormatCSV)
	if err != nil {
		t.Fatalf("NewWriter(csv) error = %v", err)
	}
	if _, ok := w.(*CSVWriter); !ok {
		t.Errorf("csv: got %T", w)
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Format("xml"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("error = %v", err)
	}
}

// --- JSONWriter tests ---

func TestJSONWriter_SingleProfileIsBareObject(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "  ")

	if err := w.Write(testProfile(t, "Jane Doe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got record.Profile
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a bare profile object: %v", err)
	}
	if got.FullName != "Jane Doe" || got.CurrentEmployer == nil {
		t.Errorf("round-trip lost fields: %+v", got)
	}
}

func TestJSONWriter_BatchBecomesArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "  ")

	if err := w.Write(testProfile(t, "Jane Doe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(testProfile(t, "John Roe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got []record.Profile
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not an array: %v", err)
	}
	if len(got) != 2 || got[0].FullName != "Jane Doe" || got[1].FullName != "John Roe" {
		t.Errorf("round-trip lost order or fields: %+v", got)
	}
}

func TestJSONWriter_WriteAllBatchResults(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	items := []any{
		pipeline.BatchResult{Index: 0, Profile: testProfile(t, "Jane Doe")},
		rejection(1, pipeline.ReasonPlaceholderName),
	}
	if err := w.WriteAll(items); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got []pipeline.BatchResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 || got[1].RejectedReason != pipeline.ReasonPlaceholderName {
		t.Errorf("round-trip lost the rejection: %+v", got)
	}
}

func TestJSONWriter_CompactIsSingleLine(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	if err := w.Write(testProfile(t, "Jane Doe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("compact output spans %d lines", len(lines))
	}
}

func TestJSONWriter_CustomIndent(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "\t")

	if err := w.Write(testProfile(t, "Jane Doe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\t\"fullName\"") {
		t.Errorf("expected tab indentation, got %q", buf.String()[:80])
	}
}

func TestJSONWriter_EmptyRunFlushesEmptyArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("empty run = %q, want []", got)
	}
}

func TestJSONWriter_Close(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	if err := w.Write(testProfile(t, "Jane Doe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Close() must flush buffered output")
	}
}

// --- JSONLWriter tests ---

func TestJSONLWriter_OneLinePerResult(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	if err := w.Write(pipeline.BatchResult{Index: 0, Profile: testProfile(t, "Jane Doe")}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(rejection(1, pipeline.ReasonEmptyDocument)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	for i, line := range lines {
		var res pipeline.BatchResult
		if err := json.Unmarshal([]byte(line), &res); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
	if !strings.Contains(lines[1], pipeline.ReasonEmptyDocument) {
		t.Errorf("line 1 = %q, want the rejection reason", lines[1])
	}
}

func TestJSONLWriter_WriteAll(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	items := []any{testProfile(t, "Jane Doe"), testProfile(t, "John Roe")}
	if err := w.WriteAll(items); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("got %d lines", len(lines))
	}
}

func TestJSONLWriter_EmptyRunWritesNothing(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty run wrote %q", buf.String())
	}
}

// --- YAMLWriter tests ---

func TestYAMLWriter_SingleProfile(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(testProfile(t, "Jane Doe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "-") {
		t.Errorf("single profile must not be a YAML sequence:\n%s", out)
	}
	if !strings.Contains(out, "Jane Doe") || !strings.Contains(out, "Acme") {
		t.Errorf("output missing profile fields:\n%s", out)
	}
}

func TestYAMLWriter_BatchBecomesSequence(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(testProfile(t, "Jane Doe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(testProfile(t, "John Roe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "-") {
		t.Errorf("two profiles must encode as a sequence:\n%s", out)
	}
	if !strings.Contains(out, "Jane Doe") || !strings.Contains(out, "John Roe") {
		t.Errorf("output missing profiles:\n%s", out)
	}
}

func TestYAMLWriter_Close(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(testProfile(t, "Jane Doe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Close() must flush buffered output")
	}
}

// --- Option tests ---

func TestNewWriter_CompactOption(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSON, WithPretty(false), WithIndent(""))
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.Write(testProfile(t, "Jane Doe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if strings.Contains(strings.TrimSpace(buf.String()), "\n") {
		t.Error("WithPretty(false) must produce compact output")
	}
}

// --- CSVWriter tests ---

func TestCSVWriter_HeaderOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewCSVWriter(buf)

	if err := w.Write(testProfile(t, "Jane Doe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(testProfile(t, "John Roe")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "LinkedURL,FullName,") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "https://example.com/in/jane,Jane Doe,") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestCSVWriter_RejectsNonProfile(t *testing.T) {
	w := NewCSVWriter(&bytes.Buffer{})
	if err := w.Write(rejection(0, pipeline.ReasonFault)); err == nil {
		t.Error("expected an error for non-profile data")
	}
}
