package offline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// syntheticPrefix tags synthetic ids in serialized form. It exists only at the
// JSON boundary; code must use IsSynthetic, never inspect the string.
const syntheticPrefix = "local:"

// ID identifies an item in a managed collection. Canonical ids are assigned by
// the server; synthetic ids are generated locally for optimistic placeholders
// and are replaced by the canonical id once the server confirms the item.
type ID struct {
	token     string
	synthetic bool
}

// CanonicalID wraps a server-assigned identifier.
func CanonicalID(token string) ID {
	return ID{token: token}
}

// NewSyntheticID returns a fresh synthetic id. Tokens are ULIDs, so they are
// temporally unique and sortable by creation time.
func NewSyntheticID() ID {
	return ID{token: ulid.Make().String(), synthetic: true}
}

// IsSynthetic reports whether the id is a local placeholder.
func (id ID) IsSynthetic() bool {
	return id.synthetic
}

// IsZero reports whether the id is the zero value.
func (id ID) IsZero() bool {
	return id.token == ""
}

func (id ID) String() string {
	return id.token
}

// MarshalJSON writes canonical ids verbatim and synthetic ids with a reserved
// prefix, so a cache snapshot taken while a mutation is in flight can never
// round-trip a synthetic id as canonical.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.synthetic {
		return json.Marshal(syntheticPrefix + id.token)
	}
	return json.Marshal(id.token)
}

// UnmarshalJSON restores an id written by MarshalJSON.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("unmarshal id: %w", err)
	}
	if token, ok := strings.CutPrefix(s, syntheticPrefix); ok {
		*id = ID{token: token, synthetic: true}
		return nil
	}
	*id = ID{token: s}
	return nil
}

// Item is an element of a managed collection with a stable identity.
type Item interface {
	ItemID() ID
}
