package query

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/viant/vehiclepos/position"
)

// Format names a query point encoding.
type Format string

const (
	FormatDefault Format = "default"
	FormatCSV     Format = "csv"
	FormatNMEA    Format = "nmea"
)

// defaults are latitude/longitude pairs around the Texas/Oklahoma border.
var defaults = []position.Query{
	{X: 34.544909, Y: -102.100843},
	{X: 32.345544, Y: -99.123124},
	{X: 33.234235, Y: -100.214124},
	{X: 35.195739, Y: -95.348899},
	{X: 31.895839, Y: -97.789573},
	{X: 32.895839, Y: -101.789573},
	{X: 34.115839, Y: -100.225732},
	{X: 32.335839, Y: -99.992232},
	{X: 33.535339, Y: -94.792232},
	{X: 32.234235, Y: -100.22222},
}

// Defaults returns a copy of the built-in query set.
func Defaults() []position.Query {
	return append([]position.Query(nil), defaults...)
}

// Parse reads query points from r in the given format. FormatDefault ignores
// r and returns Defaults.
func Parse(r io.Reader, format Format) ([]position.Query, error) {
	switch format {
	case FormatDefault, "":
		return Defaults(), nil
	case FormatCSV:
		return ParseCSV(r)
	case FormatNMEA:
		return ParseNMEA(r)
	}
	return nil, fmt.Errorf("query: unsupported format %q", format)
}

// ParseCSV reads "x,y" lines. Blank lines and lines starting with # are
// skipped.
func ParseCSV(r io.Reader) ([]position.Query, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var out []position.Query
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("query: csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		x, err := parseCoordinate(fields[0])
		if err != nil {
			return nil, fmt.Errorf("query: csv line %d: x: %w", line, err)
		}
		y, err := parseCoordinate(fields[1])
		if err != nil {
			return nil, fmt.Errorf("query: csv line %d: y: %w", line, err)
		}
		out = append(out, position.Query{X: x, Y: y})
	}
}

func parseCoordinate(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ParseNMEA reads GPS sentences and returns one query point per valid RMC or
// GGA fix, in input order. Lines that are not sentences, fail to parse, or
// carry a void fix are skipped.
func ParseNMEA(r io.Reader) ([]position.Query, error) {
	var out []position.Query
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "$") {
			continue
		}
		sentence, err := nmea.Parse(line)
		if err != nil {
			continue
		}
		switch sentence.DataType() {
		case nmea.TypeRMC:
			m := sentence.(nmea.RMC)
			if m.Validity != nmea.ValidRMC {
				continue
			}
			out = append(out, position.Query{X: m.Latitude, Y: m.Longitude})
		case nmea.TypeGGA:
			m := sentence.(nmea.GGA)
			if m.FixQuality == nmea.Invalid {
				continue
			}
			out = append(out, position.Query{X: m.Latitude, Y: m.Longitude})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("query: nmea: %w", err)
	}
	return out, nil
}
