package position

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteStore keeps decoded records in a SQLite positions table. Nearest
// ranks rows with the pos_dist2 SQL function, so the database must be opened
// through engine.Open (or have engine.RegisterPositionFunctions called before
// its connections were created).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed Store. It ensures the positions
// schema exists in the provided database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("position: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Save replaces the content of the positions table with records.
func (s *SQLiteStore) Save(ctx context.Context, records []Record) error {
	if ctx == nil {
		ctx = context.Background()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM positions`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO positions(seq, vehicle_id, registration, latitude, longitude, recorded_at) VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		// SQLite integers are signed; the timestamp round-trips through its
		// two's complement bit pattern.
		if _, err := stmt.ExecContext(ctx, i, r.VehicleID, r.Registration, float64(r.Latitude), float64(r.Longitude), int64(r.RecordedAtUTC)); err != nil {
			return fmt.Errorf("position: save record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Load returns all stored records ordered by their original position.
func (s *SQLiteStore) Load(ctx context.Context) ([]Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.db.QueryContext(ctx, `SELECT vehicle_id, registration, latitude, longitude, recorded_at FROM positions ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Nearest returns the stored record with the smallest squared distance to q,
// preferring the lowest seq on ties.
func (s *SQLiteStore) Nearest(ctx context.Context, q Query) (Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	row := s.db.QueryRowContext(ctx, `SELECT vehicle_id, registration, latitude, longitude, recorded_at
FROM positions
ORDER BY pos_dist2(latitude, longitude, ?, ?) ASC, seq ASC
LIMIT 1`, q.X, q.Y)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrEmptyRecordSet
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r        Record
		lat, lon float64
		ts       int64
	)
	if err := sc.Scan(&r.VehicleID, &r.Registration, &lat, &lon, &ts); err != nil {
		return Record{}, err
	}
	r.Latitude = float32(lat)
	r.Longitude = float32(lon)
	r.RecordedAtUTC = uint64(ts)
	return r, nil
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
