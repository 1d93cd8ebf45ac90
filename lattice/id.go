package lattice

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// ID is an opaque 128-bit identifier for cells, sites and states.
// It is comparable (usable as a map key) and totally ordered by Compare.
type ID uuid.UUID

// NilID is the zero identifier; it is never assigned by NewID.
var NilID ID

// NewID returns a fresh random (version 4) identifier.
func NewID() ID { return ID(uuid.New()) }

// ParseID decodes the canonical textual form.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilID, fmt.Errorf("lattice: parse id %q: %w", s, err)
	}

	return ID(u), nil
}

// String returns the canonical textual form.
func (id ID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id is NilID.
func (id ID) IsZero() bool { return id == NilID }

// Compare orders identifiers bytewise: -1, 0 or +1.
func (id ID) Compare(other ID) int { return bytes.Compare(id[:], other[:]) }

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return fmt.Errorf("lattice: parse id: %w", err)
	}
	*id = ID(u)

	return nil
}
