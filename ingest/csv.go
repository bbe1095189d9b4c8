package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/triage/core"
)

// CSVRowSource is one row of a tabular upload. The row text is already small
// enough to embed directly, so it needs no chunking downstream.
type CSVRowSource struct {
	File string
	Row  int // zero-based row index within the file
	Text string
}

var _ Source = (*CSVRowSource)(nil)

// Kind returns core.SourceKindCSVRow.
func (s *CSVRowSource) Kind() core.SourceKind {
	return core.SourceKindCSVRow
}

// Origin returns "file#row".
func (s *CSVRowSource) Origin() string {
	return fmt.Sprintf("%s#%d", s.File, s.Row)
}

// Extract returns the row text.
func (s *CSVRowSource) Extract(ctx context.Context) (string, error) {
	if strings.TrimSpace(s.Text) == "" {
		return "", documentError(s.Origin(), ErrEmptyDocument)
	}
	return s.Text, nil
}

// ReadLabeledCSV parses a header-less two-column (text, category) CSV into
// labeled training examples. Columns are positional; rows with a missing
// text or category are dropped, matching the training contract's null-row
// handling. A row with fewer than two columns fails with ErrMalformedRow.
func ReadLabeledCSV(r io.Reader, origin string) ([]core.LabeledExample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // validated per row below

	var examples []core.LabeledExample
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, documentError(fmt.Sprintf("%s#%d", origin, row), err)
		}
		if len(record) < 2 {
			return nil, documentError(fmt.Sprintf("%s#%d", origin, row), ErrMalformedRow)
		}

		text := strings.TrimSpace(record[0])
		category := strings.TrimSpace(record[1])
		row++

		// Drop null rows rather than failing the whole file.
		if text == "" || category == "" {
			continue
		}

		examples = append(examples, core.LabeledExample{Text: text, Category: category})
	}

	if len(examples) == 0 {
		return nil, documentError(origin, ErrEmptyDocument)
	}

	return examples, nil
}

// CSVRowSources converts parsed examples into per-row sources so ticket text
// can also be ingested into the index as context documents.
func CSVRowSources(file string, examples []core.LabeledExample) []Source {
	sources := make([]Source, len(examples))
	for i, ex := range examples {
		sources[i] = &CSVRowSource{File: file, Row: i, Text: ex.Text}
	}
	return sources
}
