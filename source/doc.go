// Package source loads raw positions buffers for decoding. A source is a
// local file path or an s3://bucket/key object URI; .zst and .lz4 names are
// decompressed transparently. A source that does not exist loads as an empty
// buffer, which decodes to zero records.
package source
