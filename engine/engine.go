package engine

import (
	"database/sql"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver. The
// position scalar functions are registered first so every connection of the
// returned pool can use them.
//
// For file-based databases, pass a path like "./positions.sqlite". For
// in-memory databases, pass ":memory:".
func Open(dsn string) (*sql.DB, error) {
	if err := RegisterPositionFunctions(); err != nil {
		return nil, err
	}
	return sql.Open("sqlite", dsn)
}
