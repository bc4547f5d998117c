package engine

import (
	"database/sql"
	"math"
	"testing"

	"github.com/viant/vehiclepos/position"
)

// TestPosDist2Function validates that pos_dist2 is registered by Open and
// returns the squared planar distance.
func TestPosDist2Function(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	var d float64
	if err := db.QueryRow(`SELECT pos_dist2(0, 0, 3, 4)`).Scan(&d); err != nil {
		t.Fatalf("SELECT pos_dist2 failed: %v", err)
	}
	if d != 25 {
		t.Fatalf("pos_dist2(0,0,3,4) = %v, want 25", d)
	}

	if err := db.QueryRow(`SELECT pos_dist2(1.0, 1.0, ?, ?)`, float32(0.4), float32(0.4)).Scan(&d); err != nil {
		t.Fatalf("SELECT pos_dist2 with args failed: %v", err)
	}
	if math.Abs(d-0.72) > 1e-6 {
		t.Fatalf("pos_dist2(1,1,0.4,0.4) = %v, want ~0.72", d)
	}
}

// TestPosDist2Null verifies that a NULL coordinate propagates to a NULL
// result instead of an error.
func TestPosDist2Null(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	var d sql.NullFloat64
	if err := db.QueryRow(`SELECT pos_dist2(NULL, 0, 1, 1)`).Scan(&d); err != nil {
		t.Fatalf("SELECT pos_dist2(NULL...) failed: %v", err)
	}
	if d.Valid {
		t.Fatalf("pos_dist2 with NULL = %v, want NULL", d.Float64)
	}
}

// TestPosDist2TextArgument verifies that non-numeric arguments are rejected.
func TestPosDist2TextArgument(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	var d float64
	if err := db.QueryRow(`SELECT pos_dist2('a', 0, 1, 1)`).Scan(&d); err == nil {
		t.Fatalf("expected error for TEXT argument, got %v", d)
	}
}

func TestRegisterPositionFunctionsIdempotent(t *testing.T) {
	for i := 0; i < 3; i++ {
		if err := RegisterPositionFunctions(); err != nil {
			t.Fatalf("RegisterPositionFunctions call %d failed: %v", i, err)
		}
	}
}

// TestPosDist2MatchesSquaredDistance verifies that SQL ranking uses exactly
// the same float32 arithmetic as in-memory searches.
func TestPosDist2MatchesSquaredDistance(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	cases := []struct {
		q position.Query
		r position.Record
	}{
		{position.Query{X: 0.4, Y: 0.4}, position.Record{Latitude: 1, Longitude: 1}},
		{position.Query{X: 34.544909, Y: -102.100843}, position.Record{Latitude: 34.5449, Longitude: -102.1}},
		{position.Query{X: -1e-3, Y: 1e6}, position.Record{Latitude: 0.1, Longitude: -3.25}},
	}
	for _, tc := range cases {
		var d float64
		err := db.QueryRow(`SELECT pos_dist2(?, ?, ?, ?)`,
			float64(tc.r.Latitude), float64(tc.r.Longitude), tc.q.X, tc.q.Y).Scan(&d)
		if err != nil {
			t.Fatalf("SELECT pos_dist2 failed: %v", err)
		}
		if want := position.SquaredDistance(tc.q, tc.r); float32(d) != want {
			t.Fatalf("pos_dist2(%v, %v) = %v, want %v", tc.r, tc.q, d, want)
		}
	}
}
