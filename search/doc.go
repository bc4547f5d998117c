// Package search runs nearest-position queries over a built index. Queries
// are independent and read the index without mutating it, so Runner executes
// them concurrently and collects results in query order.
package search
