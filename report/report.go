package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/viant/vehiclepos/search"
)

// FormatLine renders one result as a console line.
func FormatLine(r search.Result) string {
	return fmt.Sprintf("The nearest coordinate to (%v, %v) is (%v,%v) and has registration number (%s)",
		r.Query.X, r.Query.Y, r.Record.Latitude, r.Record.Longitude, r.Record.Registration)
}

// FormatTiming renders the phase durations in milliseconds.
func FormatTiming(t search.Timing) string {
	return fmt.Sprintf("\nData file read execution time : %d ms \nClosest position calculation execution time : %d ms \nTotal execution time : %d ms \n",
		t.Read.Milliseconds(), t.Search.Milliseconds(), t.Total().Milliseconds())
}

// WriteText writes one line per result followed by the timing summary.
func WriteText(w io.Writer, results []search.Result, t search.Timing) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, FormatLine(r)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, FormatTiming(t))
	return err
}

// Message is the JSON form of a result.
type Message struct {
	QueryX        float64 `json:"query_x"`
	QueryY        float64 `json:"query_y"`
	VehicleID     int32   `json:"vehicle_id"`
	Registration  string  `json:"registration"`
	Latitude      float32 `json:"lat"`
	Longitude     float32 `json:"lon"`
	RecordedAtUTC uint64  `json:"recorded_at_utc"`
	Distance      float32 `json:"distance_sq"`
}

// NewMessage converts a result to its JSON form.
func NewMessage(r search.Result) Message {
	return Message{
		QueryX:        r.Query.X,
		QueryY:        r.Query.Y,
		VehicleID:     r.Record.VehicleID,
		Registration:  r.Record.Registration,
		Latitude:      r.Record.Latitude,
		Longitude:     r.Record.Longitude,
		RecordedAtUTC: r.Record.RecordedAtUTC,
		Distance:      r.Distance,
	}
}

// WriteJSON writes results as a JSON array of messages.
func WriteJSON(w io.Writer, results []search.Result) error {
	msgs := make([]Message, len(results))
	for i, r := range results {
		msgs[i] = NewMessage(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(msgs)
}
