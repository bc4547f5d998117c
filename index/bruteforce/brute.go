package bruteforce

import (
	"fmt"

	"github.com/viant/vehiclepos/position"
)

// Index is a linear-scan nearest-position index.
type Index struct {
	records []position.Record
}

// Build loads the records to scan.
func (i *Index) Build(records []position.Record) error {
	if len(records) == 0 {
		i.records = nil
		return nil
	}
	i.records = append([]position.Record(nil), records...)
	return nil
}

// Len reports the number of indexed records.
func (i *Index) Len() int { return len(i.records) }

// Nearest returns the first record with the minimum squared distance to q.
func (i *Index) Nearest(q position.Query) (position.Record, error) {
	j, _, err := Scan(q, i.records)
	if err != nil {
		return position.Record{}, err
	}
	return i.records[j], nil
}

// Scan walks records once and returns the index and squared distance of the
// first record at minimum distance from q.
func Scan(q position.Query, records []position.Record) (int, float32, error) {
	if len(records) == 0 {
		return -1, 0, position.ErrEmptyRecordSet
	}
	best := 0
	bestDist := position.SquaredDistance(q, records[0])
	for j := 1; j < len(records); j++ {
		if d := position.SquaredDistance(q, records[j]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, bestDist, nil
}

// MarshalBinary stores the records in the positions file layout.
func (i *Index) MarshalBinary() ([]byte, error) {
	return position.Encode(i.records)
}

// UnmarshalBinary restores the index from bytes.
func (i *Index) UnmarshalBinary(data []byte) error {
	records, err := position.Decode(data)
	if err != nil {
		return fmt.Errorf("bruteforce: %w", err)
	}
	return i.Build(records)
}
