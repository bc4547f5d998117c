package halving

import "github.com/viant/vehiclepos/position"

// DistanceFunc scores a record against a query; smaller is closer.
type DistanceFunc func(q position.Query, r position.Record) float32

// Nearest returns the record in records closest to q by squared distance.
// It returns position.ErrEmptyRecordSet when records is empty.
func Nearest(q position.Query, records []position.Record) (position.Record, error) {
	return NearestFunc(q, records, position.SquaredDistance)
}

// NearestIndex is like Nearest but returns the index of the winning record.
func NearestIndex(q position.Query, records []position.Record) (int, error) {
	return nearestIndex(q, records, position.SquaredDistance)
}

// NearestFunc runs the halving search with a custom distance function. A nil
// dist falls back to position.SquaredDistance.
func NearestFunc(q position.Query, records []position.Record, dist DistanceFunc) (position.Record, error) {
	i, err := nearestIndex(q, records, dist)
	if err != nil {
		return position.Record{}, err
	}
	return records[i], nil
}

func nearestIndex(q position.Query, records []position.Record, dist DistanceFunc) (int, error) {
	if len(records) == 0 {
		return -1, position.ErrEmptyRecordSet
	}
	if dist == nil {
		dist = position.SquaredDistance
	}
	s := &searcher{query: q, records: records, dist: dist}
	return s.nearest(0, len(records)), nil
}

// searcher works on index ranges of a shared read-only slice instead of
// copying halves.
type searcher struct {
	query   position.Query
	records []position.Record
	dist    DistanceFunc
}

// nearest returns the index of the closest record in [lo, hi).
func (s *searcher) nearest(lo, hi int) int {
	switch hi - lo {
	case 1:
		return lo
	case 2:
		return s.closer(lo, lo+1)
	}
	mid := lo + (hi-lo)/2
	left := s.nearest(lo, mid)
	right := s.nearest(mid, hi)
	return s.closer(left, right)
}

// closer picks between a and b, where a < b; a wins ties.
func (s *searcher) closer(a, b int) int {
	if s.dist(s.query, s.records[a]) <= s.dist(s.query, s.records[b]) {
		return a
	}
	return b
}
