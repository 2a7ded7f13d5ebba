// Package seqstore moves seqdata containers in and out of storage folders.
package seqstore

import (
	"io"
)

// ChunkSource yields the chunks to push, returning io.EOF after the last one.
// *seqdata.Reader and *seqfile.Reader satisfy it.
type ChunkSource interface {
	Next() ([]byte, error)
}

// ChunkSink receives fetched chunks with their offset in the chunk region.
type ChunkSink func(offset int64, data []byte) error

// SliceSource serves chunks from memory.
type SliceSource struct {
	chunks [][]byte
}

func NewSliceSource(chunks ...[]byte) *SliceSource {
	return &SliceSource{chunks: chunks}
}

func (source *SliceSource) Next() ([]byte, error) {
	if len(source.chunks) == 0 {
		return nil, io.EOF
	}
	chunk := source.chunks[0]
	source.chunks = source.chunks[1:]
	return chunk, nil
}

// Stats describes a pushed or fetched container.
type Stats struct {
	Chunks int
	// Bytes is the total size of chunk data.
	Bytes int64
	// Size is the size of the stored object.
	Size int64
}

func (stats *Stats) add(chunk []byte) {
	stats.Chunks++
	stats.Bytes += int64(len(chunk))
}
