package limiters_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wal-g/seqdata/internal/limiters"
	"github.com/wal-g/seqdata/pkg/storages/memory"
	"github.com/wal-g/seqdata/pkg/storages/storage"
	"golang.org/x/time/rate"
)

func TestLimitedFolder(t *testing.T) {
	folder := limiters.NewFolder(memory.NewFolder("limited/", memory.NewKVS()), rate.NewLimiter(rate.Inf, 4))

	storage.RunFolderTest(folder, t)
}

func TestReader_ReadsAtMostBurst(t *testing.T) {
	reader := limiters.NewReader(context.Background(), strings.NewReader("0123456789"), rate.NewLimiter(rate.Inf, 4))

	buf := make([]byte, 10)
	n, err := reader.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	rest, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "456789", string(rest))
}

func TestReader_Throttles(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(1000), 100)
	reader := limiters.NewReader(context.Background(), bytes.NewReader(make([]byte, 300)), limiter)

	start := time.Now()
	n, err := io.Copy(io.Discard, reader)
	require.NoError(t, err)
	assert.Equal(t, int64(300), n)
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestReader_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reader := limiters.NewReader(ctx, strings.NewReader("data"), rate.NewLimiter(rate.Limit(1), 4))

	_, err := reader.Read(make([]byte, 4))
	assert.Error(t, err)
}
