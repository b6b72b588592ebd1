package types

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Record is one contact: a name plus a set of phones.
// The name is fixed at construction. Phones keep their insertion order for
// rendering; membership is what matters.
type Record struct {
	ID string // UUID v7, generated on creation.

	name   Name
	phones map[Phone]struct{}
	order  []Phone
}

// NewRecord creates a Record with no phones.
// Returns ErrValidation if name is empty.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:     uuid.Must(uuid.NewV7()).String(),
		name:   n,
		phones: make(map[Phone]struct{}),
	}, nil
}

// Name returns the contact name.
func (r *Record) Name() Name {
	return r.name
}

// Phones returns a copy of the record's phones in insertion order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.order)
}

// Len returns the number of phones on the record.
func (r *Record) Len() int {
	return len(r.order)
}

// AddPhone validates phone and adds it to the record.
// Adding a phone that is already present is a no-op.
// Returns ErrValidation if phone is malformed.
func (r *Record) AddPhone(phone string) error {
	p, err := NewPhone(phone)
	if err != nil {
		return err
	}
	r.insert(p)
	return nil
}

// FindPhone returns the record's phone equal to phone.
// Returns ErrValidation if phone is malformed and ErrNotFound if the record
// does not hold it.
func (r *Record) FindPhone(phone string) (Phone, error) {
	p, err := NewPhone(phone)
	if err != nil {
		return Phone{}, err
	}
	if _, ok := r.phones[p]; !ok {
		return Phone{}, fmt.Errorf("%w: phone %s on contact %s", ErrNotFound, phone, r.name)
	}
	return p, nil
}

// RemovePhone removes phone from the record.
// Returns ErrNotFound if the record does not hold it.
func (r *Record) RemovePhone(phone string) error {
	p, err := r.FindPhone(phone)
	if err != nil {
		return err
	}
	delete(r.phones, p)
	r.order = slices.DeleteFunc(r.order, func(q Phone) bool { return q == p })
	return nil
}

// EditPhone replaces oldPhone with newPhone. The replacement takes the
// position of oldPhone. If newPhone is already on the record the two entries
// collapse into one.
// Returns ErrNotFound if oldPhone is absent and ErrValidation if newPhone is
// malformed. The phone set is unchanged on error.
func (r *Record) EditPhone(oldPhone, newPhone string) error {
	old, err := r.FindPhone(oldPhone)
	if err != nil {
		return err
	}
	p, err := NewPhone(newPhone)
	if err != nil {
		return err
	}
	if old == p {
		return nil
	}

	delete(r.phones, old)
	i := slices.Index(r.order, old)
	if _, dup := r.phones[p]; dup {
		r.order = slices.Delete(r.order, i, i+1)
		return nil
	}
	r.phones[p] = struct{}{}
	r.order[i] = p
	return nil
}

func (r *Record) insert(p Phone) {
	if _, ok := r.phones[p]; ok {
		return
	}
	r.phones[p] = struct{}{}
	r.order = append(r.order, p)
}

func (r *Record) String() string {
	parts := make([]string, len(r.order))
	for i, p := range r.order {
		parts[i] = p.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(parts, "; "))
}

// recordJSON is the JSON shape of a Record.
type recordJSON struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Phones []string `json:"phones"`
}

// MarshalJSON renders the record as {"id", "name", "phones"}.
// Phones is an empty array, never null.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		ID:     r.ID,
		Name:   r.name.Value(),
		Phones: make([]string, len(r.order)),
	}
	for i, p := range r.order {
		out.Phones[i] = p.Value()
	}
	return json.Marshal(out)
}
