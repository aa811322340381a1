// Test Type: Integration Test
// Description: Tests for change detection and debouncing on a real filesystem

package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_CoalescesChanges(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "dist")
	require.NoError(t, os.MkdirAll(out, 0755))
	index := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(index, []byte("v0"), 0644))

	w, err := watch.New([]string{index, dir}, watch.Options{
		Debounce: 300 * time.Millisecond,
		Ignore:   []string{out},
	})
	require.NoError(t, err)
	defer w.Close()

	realDir, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{realDir}, w.Dirs())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(changed []string) { batches <- changed })
	}()

	for i := 1; i <= 3; i++ {
		require.NoError(t, os.WriteFile(index, []byte{byte('0' + i)}, 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-123"), []byte("x"), 0644))

	select {
	case changed := <-batches:
		assert.Contains(t, changed, index)
		assert.NotContains(t, changed, filepath.Join(dir, ".tmp-123"))
	case <-time.After(5 * time.Second):
		t.Fatal("no batch triggered")
	}

	select {
	case extra := <-batches:
		t.Fatalf("unexpected second batch: %v", extra)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_MissingPath(t *testing.T) {
	_, err := watch.New([]string{filepath.Join(t.TempDir(), "nope")}, watch.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrWatch))
}
