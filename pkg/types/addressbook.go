package types

import (
	"fmt"
	"maps"
	"slices"
)

// AddressBook maps contact names to Records.
// A Record belongs to exactly one book; the book holds it by pointer, so
// changes made through a Record returned by Find are visible in the book.
type AddressBook struct {
	records map[string]*Record
}

// NewAddressBook returns an empty AddressBook.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. A record already stored under the same
// name is replaced entirely, phones included; the two are not merged.
func (b *AddressBook) AddRecord(r *Record) {
	b.records[r.Name().String()] = r
}

// Find returns the record stored under name.
// Returns ErrNotFound if there is none.
func (b *AddressBook) Find(name string) (*Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: contact %s", ErrNotFound, name)
	}
	return r, nil
}

// Delete removes the record stored under name, along with its phones.
// Returns ErrNotFound if there is none.
func (b *AddressBook) Delete(name string) error {
	if _, err := b.Find(name); err != nil {
		return err
	}
	delete(b.records, name)
	return nil
}

// Len returns the number of records in the book.
func (b *AddressBook) Len() int {
	return len(b.records)
}

// Names returns the record names in ascending order.
func (b *AddressBook) Names() []string {
	return slices.Sorted(maps.Keys(b.records))
}

// Records returns the records ordered by name.
// Returns an empty slice (not nil) for an empty book.
func (b *AddressBook) Records() []*Record {
	names := b.Names()
	out := make([]*Record, 0, len(names))
	for _, n := range names {
		out = append(out, b.records[n])
	}
	return out
}
