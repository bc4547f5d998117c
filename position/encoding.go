package position

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Fixed-width field sizes of the positions file layout.
const (
	vehicleIDSize = 4
	coordSize     = 4
	timestampSize = 8

	// minRecordSize is the smallest possible record: an empty registration
	// still carries its terminator.
	minRecordSize = vehicleIDSize + 1 + 2*coordSize + timestampSize
)

// ErrTruncated is matched by every *TruncatedRecordError via errors.Is.
var ErrTruncated = errors.New("position: truncated record")

// TruncatedRecordError reports a buffer that ends in the middle of a record.
type TruncatedRecordError struct {
	// Offset is the byte offset where the incomplete record starts.
	Offset int
	// At is the byte offset where reading Field failed.
	At int
	// Field names the field that could not be read.
	Field string
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("position: truncated record at offset %d: %s incomplete at byte %d", e.Offset, e.Field, e.At)
}

func (e *TruncatedRecordError) Is(target error) bool { return target == ErrTruncated }

// Decode parses a flat positions buffer into records in file order. The
// buffer is a plain concatenation of records, each laid out little-endian
// as:
//
//	int32   vehicle id
//	[]byte  registration, terminated by a single 0x00
//	float32 latitude
//	float32 longitude
//	uint64  recorded-at timestamp
//
// An empty buffer yields no records. A buffer ending inside a record yields
// a *TruncatedRecordError and no records.
func Decode(data []byte) ([]Record, error) {
	if len(data) == 0 {
		return nil, nil
	}
	out := make([]Record, 0, len(data)/(minRecordSize+8))
	off := 0
	for off < len(data) {
		rec, next, err := decodeRecord(data, off)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
		off = next
	}
	return out, nil
}

// decodeRecord reads one record starting at off and returns it with the
// offset of the byte that follows it.
func decodeRecord(data []byte, off int) (Record, int, error) {
	start := off
	truncated := func(field string) error {
		return &TruncatedRecordError{Offset: start, At: off, Field: field}
	}
	var rec Record

	if off+vehicleIDSize > len(data) {
		return Record{}, 0, truncated("vehicle id")
	}
	rec.VehicleID = int32(binary.LittleEndian.Uint32(data[off:]))
	off += vehicleIDSize

	end := bytes.IndexByte(data[off:], 0)
	if end < 0 {
		return Record{}, 0, truncated("registration")
	}
	rec.Registration = string(data[off : off+end])
	off += end + 1

	if off+coordSize > len(data) {
		return Record{}, 0, truncated("latitude")
	}
	rec.Latitude = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	off += coordSize

	if off+coordSize > len(data) {
		return Record{}, 0, truncated("longitude")
	}
	rec.Longitude = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	off += coordSize

	if off+timestampSize > len(data) {
		return Record{}, 0, truncated("recorded at")
	}
	rec.RecordedAtUTC = binary.LittleEndian.Uint64(data[off:])
	off += timestampSize

	return rec, off, nil
}

// Encode serializes records using the layout read by Decode. It fails if a
// registration contains a zero byte, since that would end the string early.
func Encode(records []Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, nil
	}
	size := 0
	for _, r := range records {
		size += minRecordSize + len(r.Registration)
	}
	out := make([]byte, 0, size)
	for i, r := range records {
		if strings.IndexByte(r.Registration, 0) >= 0 {
			return nil, fmt.Errorf("position: record %d: registration %q contains a zero byte", i, r.Registration)
		}
		out = binary.LittleEndian.AppendUint32(out, uint32(r.VehicleID))
		out = append(out, r.Registration...)
		out = append(out, 0)
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(r.Latitude))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(r.Longitude))
		out = binary.LittleEndian.AppendUint64(out, r.RecordedAtUTC)
	}
	return out, nil
}

// RecordSize returns the number of bytes r occupies once encoded.
func RecordSize(r Record) int { return minRecordSize + len(r.Registration) }
