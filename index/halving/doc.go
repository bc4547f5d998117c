// Package halving finds the nearest position record by recursively halving
// the record range and comparing the winners of both halves. There is no
// spatial pruning: every record is examined, so a query costs O(n) distance
// evaluations with O(log n) recursion depth. Ties always resolve to the
// record with the lower index.
package halving
