package position

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"
)

func sampleRecords() []Record {
	return []Record{
		{VehicleID: 1, Registration: "ABC123", Latitude: 0, Longitude: 0, RecordedAtUTC: 0},
		{VehicleID: 2, Registration: "XYZ789", Latitude: 1, Longitude: 1, RecordedAtUTC: 1609459200},
		{VehicleID: -3, Registration: "QRS456", Latitude: 5, Longitude: -5.5, RecordedAtUTC: 1<<63 + 7},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	orig := sampleRecords()

	b, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := 0
	for _, r := range orig {
		want += RecordSize(r)
	}
	if len(b) != want {
		t.Fatalf("encoded length = %d, want %d", len(b), want)
	}

	decoded, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != len(orig) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(orig))
	}
	for i := range orig {
		if got, want := decoded[i], orig[i]; got != want {
			t.Fatalf("decoded[%d] = %+v, want %+v", i, got, want)
		}
	}
}

func TestEncodeDecode_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	orig := make([]Record, 500)
	for i := range orig {
		orig[i] = Record{
			VehicleID:     rng.Int31(),
			Registration:  "V" + strconv.Itoa(rng.Intn(1_000_000)),
			Latitude:      rng.Float32()*180 - 90,
			Longitude:     rng.Float32()*360 - 180,
			RecordedAtUTC: rng.Uint64(),
		}
	}
	b, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != len(orig) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(orig))
	}
	for i := range orig {
		if decoded[i] != orig[i] {
			t.Fatalf("decoded[%d] = %+v, want %+v", i, decoded[i], orig[i])
		}
	}
}

func TestEncodeDecode_Empty(t *testing.T) {
	b, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil) failed: %v", err)
	}
	if len(b) != 0 {
		t.Fatalf("expected empty buffer for nil slice, got len=%d", len(b))
	}

	recs, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil) failed: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records for nil buffer, got %d", len(recs))
	}
}

func TestDecode_EmptyRegistration(t *testing.T) {
	orig := []Record{{VehicleID: 9, Latitude: 2, Longitude: 3, RecordedAtUTC: 4}}
	b, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != 1 || decoded[0] != orig[0] {
		t.Fatalf("decoded = %+v, want %+v", decoded, orig)
	}
}

// TestDecode_Truncation cuts the buffer at every offset. Cuts on a record
// boundary must decode the whole records before it; every other cut must
// fail with a TruncatedRecordError.
func TestDecode_Truncation(t *testing.T) {
	recs := sampleRecords()
	b, err := Encode(recs)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	boundaries := map[int]int{0: 0}
	off := 0
	for i, r := range recs {
		off += RecordSize(r)
		boundaries[off] = i + 1
	}

	for cut := 0; cut <= len(b); cut++ {
		decoded, err := Decode(b[:cut])
		if n, ok := boundaries[cut]; ok {
			if err != nil {
				t.Fatalf("Decode(b[:%d]) failed at record boundary: %v", cut, err)
			}
			if len(decoded) != n {
				t.Fatalf("Decode(b[:%d]) returned %d records, want %d", cut, len(decoded), n)
			}
			continue
		}
		if err == nil {
			t.Fatalf("Decode(b[:%d]) succeeded with %d records, want truncation error", cut, len(decoded))
		}
		if decoded != nil {
			t.Fatalf("Decode(b[:%d]) returned partial records on error", cut)
		}
		var te *TruncatedRecordError
		if !errors.As(err, &te) {
			t.Fatalf("Decode(b[:%d]) error = %v, want *TruncatedRecordError", cut, err)
		}
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("Decode(b[:%d]) error does not match ErrTruncated", cut)
		}
		if te.Offset > cut || te.At > cut {
			t.Fatalf("Decode(b[:%d]) reported offset %d / at %d beyond the buffer", cut, te.Offset, te.At)
		}
	}
}

func TestDecode_TruncatedFieldContext(t *testing.T) {
	b, err := Encode(sampleRecords()[:1])
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// "ABC123" record: id(4) + reg(6) + NUL(1) + lat(4) + lon(4) + ts(8).
	cases := []struct {
		cut   int
		field string
		at    int
	}{
		{cut: 3, field: "vehicle id", at: 0},
		{cut: 7, field: "registration", at: 4},
		{cut: 10, field: "registration", at: 4},
		{cut: 13, field: "latitude", at: 11},
		{cut: 17, field: "longitude", at: 15},
		{cut: 26, field: "recorded at", at: 19},
	}
	for _, tc := range cases {
		_, err := Decode(b[:tc.cut])
		var te *TruncatedRecordError
		if !errors.As(err, &te) {
			t.Fatalf("cut %d: error = %v, want *TruncatedRecordError", tc.cut, err)
		}
		if te.Field != tc.field || te.At != tc.at || te.Offset != 0 {
			t.Fatalf("cut %d: got field=%q at=%d offset=%d, want field=%q at=%d offset=0", tc.cut, te.Field, te.At, te.Offset, tc.field, tc.at)
		}
	}
}

func TestDecode_SecondRecordOffset(t *testing.T) {
	recs := sampleRecords()
	b, err := Encode(recs)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	first := RecordSize(recs[0])
	_, err = Decode(b[:first+2])
	var te *TruncatedRecordError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TruncatedRecordError", err)
	}
	if te.Offset != first {
		t.Fatalf("Offset = %d, want %d", te.Offset, first)
	}
}

func TestEncode_RejectsZeroByteRegistration(t *testing.T) {
	_, err := Encode([]Record{{Registration: "AB\x00C"}})
	if err == nil {
		t.Fatalf("expected error for registration containing a zero byte")
	}
}
