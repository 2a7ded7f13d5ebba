package seqdata_test

import (
	"bytes"
	"io"
	"math/rand"
	"os"
	"testing"
	"testing/iotest"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wal-g/seqdata/pkg/seqdata"
)

func readAll(t *testing.T, reader *seqdata.Reader) [][]byte {
	chunks := make([][]byte, 0)
	for {
		chunk, err := reader.Next()
		if err == io.EOF {
			return chunks
		}
		require.NoError(t, err)
		chunks = append(chunks, chunk)
	}
}

func encode(t *testing.T, magic, header []byte, chunks ...[]byte) []byte {
	var buf bytes.Buffer
	writer := seqdata.NewWriter(&buf)
	require.NoError(t, writer.Open(magic, header))
	for _, chunk := range chunks {
		require.NoError(t, writer.WriteChunk(chunk))
	}
	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func TestReader_ExampleBytes(t *testing.T) {
	stream := []byte{0x00, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x68, 0x69}
	reader := seqdata.NewReader(bytes.NewReader(stream))

	magic, header, err := reader.Open(4, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, magic)
	assert.Empty(t, header)

	chunk, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "hi", string(chunk))

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_OrderAndEmptyChunk(t *testing.T) {
	stream := encode(t, nil, nil, []byte("a"), []byte{}, []byte("bcd"))
	reader := seqdata.NewReader(bytes.NewReader(stream))
	_, _, err := reader.Open(0, 0)
	require.NoError(t, err)

	chunk, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", string(chunk))

	chunk, err = reader.Next()
	require.NoError(t, err)
	assert.NotNil(t, chunk)
	assert.Len(t, chunk, 0)

	chunk, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "bcd", string(chunk))

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_RoundTrip(t *testing.T) {
	seed := int64(0x5eda7a11c0ffee)
	if randomize, ok := os.LookupEnv("SEQDATA_RANDOMIZE_TEST"); ok && randomize != "" && randomize != "0" {
		seed = time.Now().UnixNano()
		t.Logf("randomized seed: %x", seed)
	}
	random := rand.New(rand.NewSource(seed))

	for i := 0; i < 50; i++ {
		magic := make([]byte, random.Intn(9))
		header := make([]byte, random.Intn(33))
		random.Read(magic)
		random.Read(header)
		chunks := make([][]byte, random.Intn(20))
		for j := range chunks {
			chunks[j] = make([]byte, random.Intn(3)*random.Intn(700))
			random.Read(chunks[j])
		}

		stream := encode(t, magic, header, chunks...)
		// one byte at a time exercises partial reads of every region
		reader := seqdata.NewReader(iotest.OneByteReader(bytes.NewReader(stream)))
		gotMagic, gotHeader, err := reader.Open(len(magic), len(header))
		require.NoError(t, err)
		assert.Equal(t, magic, gotMagic)
		assert.Equal(t, header, gotHeader)
		assert.Equal(t, chunks, readAll(t, reader), "seed %x, iteration %d", seed, i)
	}
}

func TestReader_EmptySequence(t *testing.T) {
	stream := encode(t, []byte("MG"), []byte("hdr"))
	reader := seqdata.NewReader(bytes.NewReader(stream))
	_, header, err := reader.Open(2, 3)
	require.NoError(t, err)
	assert.Equal(t, "hdr", string(header))
	assert.Empty(t, readAll(t, reader))
}

func TestReader_TruncatedLengthPrefix(t *testing.T) {
	stream := encode(t, nil, nil, []byte("whole"))
	for stray := 1; stray <= 3; stray++ {
		corrupt := append(append([]byte{}, stream...), bytes.Repeat([]byte{7}, stray)...)
		reader := seqdata.NewReader(bytes.NewReader(corrupt))
		_, _, err := reader.Open(0, 0)
		require.NoError(t, err)

		chunk, err := reader.Next()
		require.NoError(t, err)
		assert.Equal(t, "whole", string(chunk))

		_, err = reader.Next()
		var truncated *seqdata.TruncatedStreamError
		require.ErrorAs(t, err, &truncated, "%d stray bytes", stray)
		assert.Equal(t, seqdata.RegionLength, truncated.Region)
		assert.Equal(t, int64(len(stream)), truncated.Offset)
		assert.Equal(t, int64(stray), truncated.Got)
		assert.Equal(t, int64(seqdata.LengthPrefixSize), truncated.Want)
	}
}

func TestReader_TruncatedBody(t *testing.T) {
	stream := encode(t, []byte("M"), nil, []byte("first"), []byte("second chunk"))
	for cut := 1; cut <= len("second chunk"); cut++ {
		corrupt := stream[:len(stream)-cut]
		reader := seqdata.NewReader(bytes.NewReader(corrupt))
		_, _, err := reader.Open(1, 0)
		require.NoError(t, err)

		_, err = reader.Next()
		require.NoError(t, err)
		_, err = reader.Next()

		var truncated *seqdata.TruncatedStreamError
		require.ErrorAs(t, err, &truncated)
		assert.Equal(t, seqdata.RegionBody, truncated.Region)
		assert.Equal(t, int64(12), truncated.Want)
		assert.Equal(t, int64(12-cut), truncated.Got)
	}
}

func TestReader_CorruptLengthDoesNotAllocate(t *testing.T) {
	// declares 4 GiB - 1 but carries 3 bytes
	stream := []byte{0xff, 0xff, 0xff, 0xff, 'a', 'b', 'c'}
	reader := seqdata.NewReader(bytes.NewReader(stream))
	_, _, err := reader.Open(0, 0)
	require.NoError(t, err)

	_, err = reader.Next()
	var truncated *seqdata.TruncatedStreamError
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, int64(seqdata.MaxChunkSize), truncated.Want)
	assert.Equal(t, int64(3), truncated.Got)
}

func TestReader_TruncatedPrelude(t *testing.T) {
	reader := seqdata.NewReader(bytes.NewReader([]byte("MAG")))
	_, _, err := reader.Open(4, 2)
	var truncated *seqdata.TruncatedStreamError
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, seqdata.RegionMagic, truncated.Region)

	reader = seqdata.NewReader(bytes.NewReader([]byte("MAGIC+h")))
	_, _, err = reader.Open(5, 4)
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, seqdata.RegionHeader, truncated.Region)
	assert.Equal(t, int64(5), truncated.Offset)
	assert.Equal(t, int64(2), truncated.Got)

	// an empty stream is truncated too when a prelude is expected
	reader = seqdata.NewReader(bytes.NewReader(nil))
	_, _, err = reader.Open(1, 0)
	assert.ErrorAs(t, err, &truncated)
}

func TestReader_IOError(t *testing.T) {
	failure := errors.New("connection reset")
	stream := encode(t, nil, nil, []byte("abc"))
	reader := seqdata.NewReader(io.MultiReader(bytes.NewReader(stream[:2]), iotest.ErrReader(failure)))
	_, _, err := reader.Open(0, 0)
	require.NoError(t, err)

	_, err = reader.Next()
	var ioErr *seqdata.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, failure)

	_, err = reader.Next()
	var protocolErr *seqdata.ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.ErrorIs(t, err, failure)
}

func TestReader_ProtocolErrors(t *testing.T) {
	reader := seqdata.NewReader(bytes.NewReader(encode(t, nil, nil)))
	var protocolErr *seqdata.ProtocolError

	_, err := reader.Next()
	require.ErrorAs(t, err, &protocolErr)

	_, _, err = reader.Open(-1, 0)
	require.ErrorAs(t, err, &protocolErr)

	_, _, err = reader.Open(0, 0)
	require.NoError(t, err)
	_, _, err = reader.Open(0, 0)
	assert.ErrorAs(t, err, &protocolErr)
}

func TestReader_FailureIsSticky(t *testing.T) {
	reader := seqdata.NewReader(bytes.NewReader([]byte{1, 0}))
	_, _, err := reader.Open(0, 0)
	require.NoError(t, err)

	_, err = reader.Next()
	var truncated *seqdata.TruncatedStreamError
	require.ErrorAs(t, err, &truncated)

	_, err = reader.Next()
	var protocolErr *seqdata.ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.ErrorAs(t, err, &truncated)
}

func TestReader_Position(t *testing.T) {
	stream := encode(t, []byte("MAGIC"), []byte("h"), []byte("1234567"), []byte("ab"), nil)
	reader := seqdata.NewReader(bytes.NewReader(stream))
	_, _, err := reader.Open(5, 1)
	require.NoError(t, err)

	expected := []int64{0, 4 + 7, 4*2 + 7 + 2, 4*3 + 7 + 2}
	for _, position := range expected[:3] {
		assert.Equal(t, position, reader.Position())
		_, err = reader.Next()
		require.NoError(t, err)
	}
	assert.Equal(t, expected[3], reader.Position())
}

func TestReader_Reset(t *testing.T) {
	stream := encode(t, []byte("M"), nil, []byte("x"), []byte("y"))
	reader := seqdata.NewReader(bytes.NewReader(stream))
	_, _, err := reader.Open(1, 0)
	require.NoError(t, err)
	_, err = reader.Next()
	require.NoError(t, err)

	reader.Reset(bytes.NewReader(stream))
	_, err = reader.Next()
	var protocolErr *seqdata.ProtocolError
	require.ErrorAs(t, err, &protocolErr)

	_, _, err = reader.Open(1, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("x"), []byte("y")}, readAll(t, reader))
}

func TestReader_NextReader(t *testing.T) {
	stream := encode(t, nil, nil, []byte("streamed body"), []byte("skipped"), []byte("last"))
	reader := seqdata.NewReader(bytes.NewReader(stream))
	_, _, err := reader.Open(0, 0)
	require.NoError(t, err)

	body, size, err := reader.NextReader()
	require.NoError(t, err)
	assert.Equal(t, int64(13), size)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "streamed body", string(data))

	skipped, _, err := reader.NextReader()
	require.NoError(t, err)
	partial := make([]byte, 3)
	_, err = io.ReadFull(skipped, partial)
	require.NoError(t, err)

	chunk, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "last", string(chunk))

	_, err = skipped.Read(partial)
	var protocolErr *seqdata.ProtocolError
	assert.ErrorAs(t, err, &protocolErr)

	_, _, err = reader.NextReader()
	assert.Equal(t, io.EOF, err)
}

func TestReader_NextReaderTruncated(t *testing.T) {
	stream := encode(t, nil, nil, []byte("0123456789"))
	reader := seqdata.NewReader(bytes.NewReader(stream[:len(stream)-4]))
	_, _, err := reader.Open(0, 0)
	require.NoError(t, err)

	body, _, err := reader.NextReader()
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	var truncated *seqdata.TruncatedStreamError
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, "012345", string(data))
	assert.Equal(t, int64(6), truncated.Got)

	_, err = reader.Next()
	var protocolErr *seqdata.ProtocolError
	assert.ErrorAs(t, err, &protocolErr)
}

func TestReader_SkippingTruncatedBodyFails(t *testing.T) {
	stream := encode(t, nil, nil, []byte("0123456789"))
	reader := seqdata.NewReader(bytes.NewReader(stream[:len(stream)-1]))
	_, _, err := reader.Open(0, 0)
	require.NoError(t, err)

	_, _, err = reader.NextReader()
	require.NoError(t, err)
	_, err = reader.Next()
	var truncated *seqdata.TruncatedStreamError
	assert.ErrorAs(t, err, &truncated)
}
