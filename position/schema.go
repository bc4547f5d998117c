package position

import (
	"database/sql"
)

const positionsSchema = `
CREATE TABLE IF NOT EXISTS positions (
    seq          INTEGER PRIMARY KEY,
    vehicle_id   INTEGER NOT NULL,
    registration TEXT NOT NULL,
    latitude     REAL NOT NULL,
    longitude    REAL NOT NULL,
    recorded_at  INTEGER NOT NULL
);
`

// EnsureSchema creates the positions table in the provided database if it
// does not already exist. seq preserves file order so ties resolve the same
// way as in-memory searches.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(positionsSchema)
	return err
}
