package catalog

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

const oneVenture = `ventures:
  - id: a
    name: Alpha
    category: ai
    stage: mvp
    founded: "2024"
`

const twoVentures = oneVenture + `  - id: b
    name: Beta
    category: saas
    stage: exit
    founded: "2019"
`

func TestSourceReload(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), oneVenture)
	src, err := NewSource(path, zap.NewNop())
	require.NoError(t, err)

	before := src.Current()
	require.Equal(t, 1, before.Len())

	require.NoError(t, os.WriteFile(path, []byte(twoVentures), 0o644))
	require.NoError(t, src.Reload())

	assert.Equal(t, 2, src.Current().Len())
	assert.Equal(t, 1, before.Len(), "old snapshot must not change")
}

func TestSourceReloadKeepsPreviousOnError(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), oneVenture)
	src, err := NewSource(path, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("ventures: [broken"), 0o644))
	assert.Error(t, src.Reload())
	assert.Equal(t, 1, src.Current().Len())
}

func TestSourceEmbedded(t *testing.T) {
	src, err := NewSource("", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 9, src.Current().Len())
	assert.NoError(t, src.Reload())
	assert.Empty(t, src.Path())
}

func TestSourceWatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeCatalog(t, t.TempDir(), oneVenture)
	src, err := NewSource(path, zap.NewNop())
	require.NoError(t, err)
	src.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Watch(ctx) }()

	// The watcher registers asynchronously; keep rewriting until it sees one.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(twoVentures), 0o644)
		return src.Current().Len() == 2
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestSourceWatchEmbeddedBlocksUntilCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	src, err := NewSource("", zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Watch(ctx) }()

	select {
	case <-done:
		t.Fatal("Watch returned before cancel")
	case <-time.After(20 * time.Millisecond):
	}
	cancel()
	assert.NoError(t, <-done)
}
