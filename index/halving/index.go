package halving

import (
	"fmt"

	"github.com/viant/vehiclepos/position"
)

// Index answers nearest queries with the halving search over the records it
// was built from.
type Index struct {
	records []position.Record
}

// New returns an index built from records.
func New(records []position.Record) *Index {
	i := &Index{}
	i.load(records)
	return i
}

// Build copies records into the index. It never fails; the error is part of
// the index.Index contract.
func (i *Index) Build(records []position.Record) error {
	i.load(records)
	return nil
}

func (i *Index) load(records []position.Record) {
	if len(records) == 0 {
		i.records = nil
		return
	}
	i.records = append([]position.Record(nil), records...)
}

// Len reports the number of indexed records.
func (i *Index) Len() int { return len(i.records) }

// Nearest returns the indexed record closest to q.
func (i *Index) Nearest(q position.Query) (position.Record, error) {
	return Nearest(q, i.records)
}

// MarshalBinary encodes the records in the positions file layout.
func (i *Index) MarshalBinary() ([]byte, error) {
	return position.Encode(i.records)
}

// UnmarshalBinary restores the index from bytes produced by MarshalBinary.
func (i *Index) UnmarshalBinary(data []byte) error {
	records, err := position.Decode(data)
	if err != nil {
		return fmt.Errorf("halving: %w", err)
	}
	return i.Build(records)
}
