package badger

import (
	"fmt"

	"github.com/poiesic/triage/core"
)

// Key prefixes for different data types. ':' separates key segments, so
// EnsureIndex rejects names containing it; a name like "a:b" would leak
// its entries into prefix scans of index "a".
const (
	indexMetaPrefix  = "vidxmeta"
	indexEntryPrefix = "vidxent"
)

// makeMetaKey generates the key holding a named index's parameters.
func makeMetaKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", indexMetaPrefix, name))
}

// makeEntryKey generates a key for an index entry by ID.
func makeEntryKey(name string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", indexEntryPrefix, name, id))
}

// makeEntryScanPrefix generates the prefix covering all entries of an index.
func makeEntryScanPrefix(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", indexEntryPrefix, name))
}
