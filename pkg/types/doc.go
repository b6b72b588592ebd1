// Package types defines the address book entities: the Field value wrapper,
// the Name and Phone fields, Record and AddressBook, and the standard error
// values returned by their operations.
//
// All types are plain in-memory values owned by a single caller. None of
// them are safe for concurrent use.
package types
