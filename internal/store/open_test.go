package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/techfacts/factbot/internal/config"
)

func TestOpen_Bolt(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.StoreDriverBolt, DataDir: t.TempDir()}

	fs, err := Open(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer fs.Close()

	_, ok := fs.(*BoltStore)
	assert.True(t, ok)
	assert.Equal(t, "bolt (azuretechfacts)", Describe(cfg))
}

func TestOpen_BoltWithCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		StoreDriver: config.StoreDriverBolt,
		DataDir:     t.TempDir(),
		RedisAddr:   mr.Addr(),
		CacheTTL:    time.Minute,
	}

	fs, err := Open(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer fs.Close()

	_, ok := fs.(*CachedStore)
	require.True(t, ok)
	assert.Equal(t, "bolt+redis (azuretechfacts)", Describe(cfg))

	ctx := context.Background()
	require.NoError(t, fs.ReplaceAll(ctx, sampleFacts))
	f, err := fs.FindFact(ctx, "released")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.True(t, mr.Exists("azuretechfacts:released"))
}
