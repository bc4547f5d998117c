package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pierrec/lz4/v4"
)

const s3Scheme = "s3://"

// Loader reads positions buffers from the local filesystem or an
// S3-compatible object store.
type Loader struct {
	s3 *minio.Client
}

// Option configures a Loader.
type Option func(*Loader)

// WithS3Client enables s3:// sources using the given client.
func WithS3Client(client *minio.Client) Option {
	return func(l *Loader) { l.s3 = client }
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewS3Client creates a MinIO client for an S3-compatible endpoint using
// static credentials.
func NewS3Client(endpoint, accessKey, secretKey string, secure bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("source: s3 client for %s: %w", endpoint, err)
	}
	return client, nil
}

// Load returns the decompressed content of uri. Missing files and objects
// yield an empty buffer and no error.
func (l *Loader) Load(ctx context.Context, uri string) ([]byte, error) {
	if uri == "" {
		return nil, fmt.Errorf("source: empty uri")
	}
	var (
		raw []byte
		err error
	)
	if strings.HasPrefix(uri, s3Scheme) {
		raw, err = l.loadS3(ctx, uri)
	} else {
		raw, err = loadFile(uri)
	}
	if err != nil || len(raw) == 0 {
		return nil, err
	}
	return decompress(uri, raw)
}

func loadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", name, err)
	}
	return data, nil
}

func (l *Loader) loadS3(ctx context.Context, uri string) ([]byte, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	if l.s3 == nil {
		return nil, fmt.Errorf("source: %s: no s3 client configured", uri)
	}
	obj, err := l.s3.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s3Error(uri, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s3Error(uri, err)
	}
	return data, nil
}

func s3Error(uri string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return nil
	}
	return fmt.Errorf("source: get %s: %w", uri, err)
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("source: %q is not an s3 uri", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("source: %q must name a bucket and a key", uri)
	}
	return bucket, key, nil
}

// Compression identifies how a source is compressed, derived from its name.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionZSTD Compression = "zst"
	CompressionLZ4  Compression = "lz4"
)

// CompressionOf returns the compression implied by the extension of name.
func CompressionOf(name string) Compression {
	switch strings.ToLower(path.Ext(name)) {
	case ".zst", ".zstd":
		return CompressionZSTD
	case ".lz4":
		return CompressionLZ4
	}
	return CompressionNone
}

func decompress(name string, data []byte) ([]byte, error) {
	switch CompressionOf(name) {
	case CompressionZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("source: zstd reader: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("source: zstd %s: %w", name, err)
		}
		return out, nil
	case CompressionLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("source: lz4 %s: %w", name, err)
		}
		return out, nil
	}
	return data, nil
}

// Compress encodes data with the compression implied by name. It is the
// inverse of the decompression applied by Load and is used to produce
// compressed fixtures.
func Compress(name string, data []byte) ([]byte, error) {
	switch CompressionOf(name) {
	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("source: zstd writer: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("source: lz4 %s: %w", name, err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("source: lz4 %s: %w", name, err)
		}
		return buf.Bytes(), nil
	}
	return data, nil
}
