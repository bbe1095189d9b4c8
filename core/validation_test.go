package core

import (
	"errors"
	"testing"
)

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *TextChunk
		wantErr error
	}{
		{
			name: "valid chunk",
			chunk: &TextChunk{
				Text:    "printer is broken",
				Seq:     0,
				Overlap: 0,
				Origin:  "tickets.csv#1",
			},
			wantErr: nil,
		},
		{
			name: "valid chunk with overlap and metadata",
			chunk: &TextChunk{
				Text:     "page two text",
				Seq:      1,
				Overlap:  200,
				Origin:   "resume.pdf",
				BatchID:  "b-1",
				Metadata: map[string]string{"source": "resume.pdf"},
			},
			wantErr: nil,
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name:    "empty text",
			chunk:   &TextChunk{Origin: "a.pdf"},
			wantErr: ErrEmptyText,
		},
		{
			name:    "empty origin",
			chunk:   &TextChunk{Text: "x"},
			wantErr: ErrEmptyOrigin,
		},
		{
			name:    "negative sequence",
			chunk:   &TextChunk{Text: "x", Origin: "a.pdf", Seq: -1},
			wantErr: ErrNegativeSequence,
		},
		{
			name:    "negative overlap",
			chunk:   &TextChunk{Text: "x", Origin: "a.pdf", Overlap: -1},
			wantErr: ErrInvalidChunk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *IndexEntry
		wantErr error
	}{
		{
			name: "valid entry",
			entry: &IndexEntry{
				Id:     IDFromContent("x"),
				Vector: []float32{0.1, 0.2},
				Text:   "x",
			},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "empty text",
			entry:   &IndexEntry{Vector: []float32{0.1}},
			wantErr: ErrEmptyText,
		},
		{
			name:    "empty vector",
			entry:   &IndexEntry{Text: "x"},
			wantErr: ErrEmptyVector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutcome(t *testing.T) {
	t.Run("valid outcomes", func(t *testing.T) {
		for _, method := range []string{MethodModel, MethodLLM, MethodFallback} {
			err := ValidateOutcome(&ClassificationOutcome{Category: "IT Support", Method: method})
			if err != nil {
				t.Fatalf("method %s: unexpected error %v", method, err)
			}
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		err := ValidateOutcome(&ClassificationOutcome{Category: "IT Support", Method: "oracle"})
		if !errors.Is(err, ErrInvalidMethod) {
			t.Fatalf("got %v, want ErrInvalidMethod", err)
		}
	})

	t.Run("empty category", func(t *testing.T) {
		err := ValidateOutcome(&ClassificationOutcome{Method: MethodModel})
		if !errors.Is(err, ErrEmptyCategory) {
			t.Fatalf("got %v, want ErrEmptyCategory", err)
		}
	})

	t.Run("confidence out of range", func(t *testing.T) {
		err := ValidateOutcome(&ClassificationOutcome{Category: "x", Method: MethodModel, Confidence: 1.5})
		if err == nil {
			t.Fatal("expected error for confidence > 1")
		}
	})
}

func TestIDFromContent(t *testing.T) {
	a := IDFromContent("printer is broken")
	b := IDFromContent("printer is broken")
	c := IDFromContent("payroll question")

	if a != b {
		t.Fatal("identical content must produce identical IDs")
	}
	if a == c {
		t.Fatal("distinct content should produce distinct IDs")
	}
}
