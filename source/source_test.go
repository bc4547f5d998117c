package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/vehiclepos/position"
)

func encodedFixture(t *testing.T) ([]position.Record, []byte) {
	t.Helper()
	records := []position.Record{
		{VehicleID: 1, Registration: "ABC123", Latitude: 0, Longitude: 0},
		{VehicleID: 2, Registration: "XYZ789", Latitude: 1, Longitude: 1, RecordedAtUTC: 10},
	}
	data, err := position.Encode(records)
	require.NoError(t, err)
	return records, data
}

func TestLoad_MissingFile(t *testing.T) {
	data, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "VehiclePositions.dat"))
	require.NoError(t, err)
	assert.Empty(t, data)

	records, err := position.Decode(data)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoad_EmptyURI(t *testing.T) {
	_, err := New().Load(context.Background(), "")
	assert.Error(t, err)
}

func TestLoad_Files(t *testing.T) {
	records, raw := encodedFixture(t)
	dir := t.TempDir()

	for _, name := range []string{"positions.dat", "positions.dat.zst", "positions.dat.lz4"} {
		t.Run(name, func(t *testing.T) {
			stored, err := Compress(name, raw)
			require.NoError(t, err)
			if CompressionOf(name) != CompressionNone {
				assert.NotEqual(t, raw, stored)
			}
			p := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(p, stored, 0o644))

			data, err := New().Load(context.Background(), p)
			require.NoError(t, err)
			assert.Equal(t, raw, data)

			decoded, err := position.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, records, decoded)
		})
	}
}

func TestLoad_CorruptZstd(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.dat.zst")
	require.NoError(t, os.WriteFile(p, []byte("not zstd at all"), 0o644))
	_, err := New().Load(context.Background(), p)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "source: zstd"), err.Error())
}

func TestLoad_CorruptLZ4(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.dat.lz4")
	require.NoError(t, os.WriteFile(p, []byte("not lz4 at all"), 0o644))
	_, err := New().Load(context.Background(), p)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "source: lz4"), err.Error())
}

func TestLoad_S3WithoutClient(t *testing.T) {
	_, err := New().Load(context.Background(), "s3://bucket/positions.dat")
	assert.ErrorContains(t, err, "no s3 client")
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ParseS3URI("s3://fleet/2024/positions.dat.zst")
	require.NoError(t, err)
	assert.Equal(t, "fleet", bucket)
	assert.Equal(t, "2024/positions.dat.zst", key)

	for _, bad := range []string{"fleet/positions.dat", "s3://", "s3://fleet", "s3://fleet/"} {
		_, _, err := ParseS3URI(bad)
		assert.Error(t, err, bad)
	}
}

func TestCompressionOf(t *testing.T) {
	assert.Equal(t, CompressionZSTD, CompressionOf("a/b.DAT.ZST"))
	assert.Equal(t, CompressionZSTD, CompressionOf("s3://b/k.zstd"))
	assert.Equal(t, CompressionLZ4, CompressionOf("x.lz4"))
	assert.Equal(t, CompressionNone, CompressionOf("VehiclePositions.dat"))
}
