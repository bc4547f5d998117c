package position

import (
	"context"
	"errors"
)

// ErrEmptyRecordSet is returned when a nearest search runs over zero records.
var ErrEmptyRecordSet = errors.New("position: empty record set")

// Record is a single decoded vehicle position. Records are values and are
// never mutated after decoding.
type Record struct {
	// VehicleID is decoded from the file but not used by searches.
	VehicleID int32

	// Registration is the vehicle registration number.
	Registration string

	// Latitude and Longitude are compared as planar X/Y coordinates.
	Latitude  float32
	Longitude float32

	// RecordedAtUTC is an epoch-like timestamp carried through unchanged.
	RecordedAtUTC uint64
}

// Query is a coordinate for which the nearest record is sought. X is
// compared with Record.Latitude and Y with Record.Longitude. Coordinates keep
// the precision they were given in; distances narrow them to float32.
type Query struct {
	X float64
	Y float64
}

// Store defines the persistence API for decoded position records.
type Store interface {
	// Save replaces the stored records with the given sequence, preserving
	// its order.
	Save(ctx context.Context, records []Record) error

	// Load returns every stored record in the order it was saved.
	Load(ctx context.Context) ([]Record, error)

	// Nearest returns the stored record closest to q by squared distance.
	// Ties resolve to the record saved first.
	Nearest(ctx context.Context, q Query) (Record, error)
}
