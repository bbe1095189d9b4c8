package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/triage/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLabeledCSV(t *testing.T) {
	t.Run("two column rows", func(t *testing.T) {
		input := "printer is broken,IT Support\npayroll question,HR Support\n"
		examples, err := ReadLabeledCSV(strings.NewReader(input), "tickets.csv")
		require.NoError(t, err)
		require.Len(t, examples, 2)
		assert.Equal(t, core.LabeledExample{Text: "printer is broken", Category: "IT Support"}, examples[0])
		assert.Equal(t, core.LabeledExample{Text: "payroll question", Category: "HR Support"}, examples[1])
	})

	t.Run("quoted text with commas", func(t *testing.T) {
		input := "\"laptop broken, again\",IT Support\n"
		examples, err := ReadLabeledCSV(strings.NewReader(input), "tickets.csv")
		require.NoError(t, err)
		require.Len(t, examples, 1)
		assert.Equal(t, "laptop broken, again", examples[0].Text)
	})

	t.Run("null rows dropped", func(t *testing.T) {
		input := "printer is broken,IT Support\n ,IT Support\npayroll question, \n"
		examples, err := ReadLabeledCSV(strings.NewReader(input), "tickets.csv")
		require.NoError(t, err)
		assert.Len(t, examples, 1)
	})

	t.Run("single column row fails", func(t *testing.T) {
		input := "printer is broken\n"
		_, err := ReadLabeledCSV(strings.NewReader(input), "tickets.csv")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedRow)
	})

	t.Run("empty file fails", func(t *testing.T) {
		_, err := ReadLabeledCSV(strings.NewReader(""), "tickets.csv")
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})
}

func TestCSVRowSource(t *testing.T) {
	src := &CSVRowSource{File: "tickets.csv", Row: 3, Text: "vpn not connecting"}

	assert.Equal(t, core.SourceKindCSVRow, src.Kind())
	assert.Equal(t, "tickets.csv#3", src.Origin())

	doc, err := Extract(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "vpn not connecting", doc.Text)
	assert.Equal(t, core.SourceKindCSVRow, doc.Kind)
}

func TestCSVRowSource_Empty(t *testing.T) {
	src := &CSVRowSource{File: "tickets.csv", Row: 0, Text: "  "}

	_, err := Extract(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "tickets.csv#0", docErr.Origin)
}

func TestExtractAll_FailingDocumentDoesNotStopOthers(t *testing.T) {
	sources := []Source{
		&CSVRowSource{File: "a.csv", Row: 0, Text: "first"},
		&CSVRowSource{File: "a.csv", Row: 1, Text: ""},
		&CSVRowSource{File: "a.csv", Row: 2, Text: "third"},
	}

	docs, errs := ExtractAll(context.Background(), sources)
	assert.Len(t, docs, 2)
	assert.Len(t, errs, 1)
}
