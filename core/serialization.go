// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted types. Vectors use the raw fixed-width
// float32 encoding; everything variable-length goes through varint prefixes.
var (
	IDMUS         = idMUS{}
	IndexEntryMUS = indexEntryMUS{}

	vectorMUS   = ord.NewSliceSer[float32](raw.Float32)
	metadataMUS = ord.NewMapSer[string, string](ord.String, ord.String)
)

var (
	_ mus.Serializer[ID]         = IDMUS
	_ mus.Serializer[IndexEntry] = IndexEntryMUS
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type indexEntryMUS struct{}

func (indexEntryMUS) Marshal(entry IndexEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(entry.Id, bs)
	n += vectorMUS.Marshal(entry.Vector, bs[n:])
	n += ord.String.Marshal(entry.Text, bs[n:])
	n += metadataMUS.Marshal(entry.Metadata, bs[n:])
	return n
}

func (indexEntryMUS) Unmarshal(bs []byte) (entry IndexEntry, n int, err error) {
	var n1 int
	entry.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	entry.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entry.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entry.Metadata, n1, err = metadataMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (indexEntryMUS) Size(entry IndexEntry) int {
	return IDMUS.Size(entry.Id) +
		vectorMUS.Size(entry.Vector) +
		ord.String.Size(entry.Text) +
		metadataMUS.Size(entry.Metadata)
}

func (indexEntryMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = metadataMUS.Skip(bs[n:])
	n += n1
	return
}
