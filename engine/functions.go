package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	sqlite "modernc.org/sqlite"

	"github.com/viant/vehiclepos/position"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterPositionFunctions registers pos_dist2 with the driver so it is
// available on new connections opened after this call. Existing open
// connections will not see it. Repeated calls are no-ops.
//
//	pos_dist2(lat, lon, x, y) = (x-lat)^2 + (y-lon)^2
//
// The arithmetic is position.SquaredDistance, so SQL and in-memory searches
// rank records identically.
func RegisterPositionFunctions() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction("pos_dist2", 4, posDist2Impl)
	})
	return registerErr
}

func asCoordinate(arg driver.Value) (float64, bool, error) {
	switch v := arg.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return v, true, nil
	case int64:
		return float64(v), true, nil
	default:
		return 0, false, fmt.Errorf("pos_dist2: unsupported argument type %T; want REAL or INTEGER", arg)
	}
}

func posDist2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("pos_dist2: expected 4 arguments, got %d", len(args))
	}
	var c [4]float64
	for i, arg := range args {
		v, ok, err := asCoordinate(arg)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		c[i] = v
	}
	q := position.Query{X: c[2], Y: c[3]}
	r := position.Record{Latitude: float32(c[0]), Longitude: float32(c[1])}
	return float64(position.SquaredDistance(q, r)), nil
}
