package trait

import (
	"errors"
	"fmt"
)

// ErrNoSharedTraits is returned by Correlation when the two entries have no
// comparable trait under the candidate list.
var ErrNoSharedTraits = errors.New("no shared traits between entries")

// DuplicateTraitError indicates an attempt to set a trait name that already
// exists on an Entry. Values are never silently overwritten.
type DuplicateTraitError struct {
	Entry string
	Trait string
}

func (e *DuplicateTraitError) Error() string {
	return fmt.Sprintf("entry %q already has a trait called %q", e.Entry, e.Trait)
}

// Entry is a single record in a trait table: a name plus a mapping from
// trait name to value.
//
// Entries are built incrementally during parsing via AddTrait and should be
// treated as immutable afterwards.
type Entry struct {
	// Name identifies the entry within its table.
	Name string

	names  []string
	traits map[string]Value
}

// NewEntry creates an empty entry with just a name.
func NewEntry(name string) *Entry {
	return &Entry{
		Name:   name,
		traits: make(map[string]Value),
	}
}

// AddTrait parses raw and stores it under the given trait name.
// A name that is already present is a hard error.
func (e *Entry) AddTrait(name, raw string) error {
	return e.SetTrait(name, Parse(raw))
}

// SetTrait stores a pre-built value under the given trait name.
// A name that is already present is a hard error.
func (e *Entry) SetTrait(name string, v Value) error {
	if _, ok := e.traits[name]; ok {
		return &DuplicateTraitError{Entry: e.Name, Trait: name}
	}
	e.traits[name] = v
	e.names = append(e.names, name)
	return nil
}

// Trait returns the value stored under name.
func (e *Entry) Trait(name string) (Value, bool) {
	v, ok := e.traits[name]
	return v, ok
}

// Traits returns the entry's trait names in insertion order.
func (e *Entry) Traits() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Len returns the number of traits on the entry.
func (e *Entry) Len() int {
	return len(e.traits)
}

func (e *Entry) String() string {
	return fmt.Sprintf("Entry(%s)", e.Name)
}
