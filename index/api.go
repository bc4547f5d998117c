package index

import "github.com/viant/vehiclepos/position"

// ErrEmptyRecordSet is returned by Nearest when the index holds no records.
var ErrEmptyRecordSet = position.ErrEmptyRecordSet

// Index defines a nearest-position index with basic lifecycle methods.
type Index interface {
	// Build loads the records to search. The index keeps its own copy so
	// later changes to the slice do not affect it.
	Build(records []position.Record) error

	// Len reports how many records the index holds.
	Len() int

	// Nearest returns the record closest to q by squared distance. Among
	// equally close records the one built first wins.
	Nearest(q position.Query) (position.Record, error)

	// MarshalBinary serializes the index using the positions file layout.
	MarshalBinary() ([]byte, error)

	// UnmarshalBinary reconstructs the index from a serialized byte slice.
	UnmarshalBinary(data []byte) error
}
