// Package index defines a minimal abstraction for nearest-position indexes
// that can be built from decoded records, queried with a point, and
// serialized for persistence. Implementations in this module include the
// halve-and-compare search and a brute-force baseline.
package index
