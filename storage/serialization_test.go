package storage

import (
	"testing"

	"github.com/poiesic/triage/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("reset my password")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry *core.IndexEntry
	}{
		{
			name: "full entry",
			entry: &core.IndexEntry{
				Id:     core.IDFromContent("the vpn client disconnects every hour"),
				Vector: []float32{0.1, -0.2, 0.3, 0.99},
				Text:   "the vpn client disconnects every hour",
				Metadata: map[string]string{
					"source":          "tickets.csv#7",
					"type":            "csv_row",
					"embedding_model": "text-embedding-ada-002",
				},
			},
		},
		{
			name: "no metadata",
			entry: &core.IndexEntry{
				Id:     core.ID(7),
				Vector: []float32{1},
				Text:   "x",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalEntry(tt.entry)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalEntry(data)
			require.NoError(t, err)
			assert.Equal(t, tt.entry.Id, decoded.Id)
			assert.Equal(t, tt.entry.Vector, decoded.Vector)
			assert.Equal(t, tt.entry.Text, decoded.Text)
			for k, v := range tt.entry.Metadata {
				assert.Equal(t, v, decoded.Metadata[k])
			}
		})
	}
}

func TestUnmarshalEntry_Truncated(t *testing.T) {
	entry := &core.IndexEntry{
		Id:     core.ID(99),
		Vector: []float32{0.5, 0.5},
		Text:   "truncation target",
	}
	data := MarshalEntry(entry)

	_, err := UnmarshalEntry(data[:len(data)/2])
	assert.Error(t, err)
}
