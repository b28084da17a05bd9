package fsnotify_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/pagedata/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Run(t *testing.T) {
	t.Parallel()

	t.Run("debounces writes to watched files", func(t *testing.T) {
		t.Parallel()

		// Given a watched file and an unwatched sibling
		dir := t.TempDir()
		watched := filepath.Join(dir, "page.html")
		other := filepath.Join(dir, "other.html")
		require.NoError(t, os.WriteFile(watched, []byte("v1"), 0644))

		w, err := fsnotify.NewWatcher([]string{watched}, fsnotify.WithDebounce(50*time.Millisecond))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		calls := make(chan []string, 10)
		done := make(chan error, 1)
		go func() {
			done <- w.Run(ctx, func(_ context.Context, paths []string) {
				calls <- paths
			})
		}()
		time.Sleep(100 * time.Millisecond)

		// When the file is written several times in quick succession
		for _, v := range []string{"v2", "v3", "v4"} {
			require.NoError(t, os.WriteFile(watched, []byte(v), 0644))
		}
		require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

		// Then the handler runs once with the watched path
		select {
		case paths := <-calls:
			abs, _ := filepath.Abs(watched)
			assert.Equal(t, []string{abs}, paths)
		case <-time.After(2 * time.Second):
			t.Fatal("handler was not called")
		}
		select {
		case paths := <-calls:
			t.Fatalf("unexpected second call with %v", paths)
		case <-time.After(200 * time.Millisecond):
		}

		// And Run returns after cancellation
		cancel()
		require.NoError(t, <-done)
	})

	t.Run("fails for missing directory", func(t *testing.T) {
		t.Parallel()

		w, err := fsnotify.NewWatcher([]string{filepath.Join(t.TempDir(), "missing", "page.html")})
		require.NoError(t, err)

		err = w.Run(context.Background(), func(context.Context, []string) {})

		require.Error(t, err)
	})
}
