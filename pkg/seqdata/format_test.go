package seqdata_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wal-g/seqdata/pkg/seqdata"
)

var testFormat = seqdata.Format{
	Magic:      []byte{0xde, 0xad, 0xbe, 0xef},
	HeaderSize: 10,
}

func TestFormat_Prelude(t *testing.T) {
	assert.Equal(t, int64(14), testFormat.Prelude())
	assert.Equal(t, int64(0), seqdata.NoMagicNoHeader.Prelude())
}

func TestFormat_CheckHeader(t *testing.T) {
	assert.NoError(t, testFormat.CheckHeader(make([]byte, 10)))

	err := testFormat.CheckHeader(make([]byte, 3))
	var sizeErr *seqdata.HeaderSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 10, sizeErr.Want)
	assert.Equal(t, 3, sizeErr.Got)
}

func TestFormat_NewWriterRejectsBadHeader(t *testing.T) {
	var buf bytes.Buffer
	_, err := testFormat.NewWriter(&buf, []byte("short"))
	var sizeErr *seqdata.HeaderSizeError
	assert.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 0, buf.Len())
}

func TestFormat_RoundTrip(t *testing.T) {
	data1 := []byte{1, 2, 3, 4, 5, 6, 7}
	data2 := []byte{125, 33, 6, 35, 6, 235, 46, 43, 25, 37}
	header := bytes.Repeat([]byte{0x90}, testFormat.HeaderSize)

	for _, format := range []seqdata.Format{seqdata.NoMagicNoHeader, testFormat} {
		var buf bytes.Buffer
		header := header[:format.HeaderSize]
		writer, err := format.NewWriter(&buf, header)
		require.NoError(t, err)
		require.NoError(t, writer.WriteChunk(data1))
		require.NoError(t, writer.WriteChunk(data2))
		require.NoError(t, writer.Close())

		reader, gotHeader, err := format.NewReader(&buf)
		require.NoError(t, err)
		assert.Equal(t, header, gotHeader)

		assert.Equal(t, int64(0), reader.Position())
		chunk, err := reader.Next()
		require.NoError(t, err)
		assert.Equal(t, data1, chunk)

		assert.Equal(t, int64(4+len(data1)), reader.Position())
		chunk, err = reader.Next()
		require.NoError(t, err)
		assert.Equal(t, data2, chunk)
	}
}

func TestFormat_NewReaderChecksMagic(t *testing.T) {
	stream := encode(t, []byte{0xca, 0xfe, 0xba, 0xbe}, make([]byte, 10))
	_, _, err := testFormat.NewReader(bytes.NewReader(stream))

	var mismatch *seqdata.MagicMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []byte{0xca, 0xfe, 0xba, 0xbe}, mismatch.Got)
	assert.Equal(t, testFormat.Magic, mismatch.Want)
}
