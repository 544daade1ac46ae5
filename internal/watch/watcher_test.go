package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestWatcher(t *testing.T, cfg Config) (<-chan string, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	paths, errs, err := Start(ctx, cfg, nil)
	require.NoError(t, err)
	go func() {
		for range errs {
		}
	}()
	return paths, cancel
}

// receive drains paths until want distinct ones arrived or the deadline hits.
func receive(t *testing.T, paths <-chan string, want int, deadline time.Duration) map[string]struct{} {
	t.Helper()
	got := map[string]struct{}{}
	timeout := time.After(deadline)
	for len(got) < want {
		select {
		case p, ok := <-paths:
			if !ok {
				return got
			}
			got[p] = struct{}{}
		case <-timeout:
			return got
		}
	}
	return got
}

func TestStartRequiresRoots(t *testing.T) {
	_, _, err := Start(context.Background(), Config{}, nil)
	require.Error(t, err)
}

func TestWatchEmitsNewImage(t *testing.T) {
	dir := t.TempDir()
	paths, _ := startTestWatcher(t, Config{Roots: []string{dir}, Debounce: 10 * time.Millisecond})

	target := filepath.Join(dir, "shot.png")
	require.NoError(t, os.WriteFile(target, []byte("png"), 0o644))

	got := receive(t, paths, 1, 5*time.Second)
	assert.Contains(t, got, target)
}

func TestWatchIgnoresNonImageFiles(t *testing.T) {
	dir := t.TempDir()
	paths, _ := startTestWatcher(t, Config{Roots: []string{dir}, Debounce: 10 * time.Millisecond})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	image := filepath.Join(dir, "after.png")
	require.NoError(t, os.WriteFile(image, []byte("png"), 0o644))

	got := receive(t, paths, 1, 5*time.Second)
	assert.Contains(t, got, image)
	assert.NotContains(t, got, filepath.Join(dir, "notes.txt"))
}

func TestWatchRapidBurst(t *testing.T) {
	// A screenshot burst: many files landing faster than the debounce
	// window. Every distinct image must still come through, and the flush
	// must not trip over concurrent event handling.
	dir := t.TempDir()
	paths, _ := startTestWatcher(t, Config{Roots: []string{dir}, Debounce: time.Millisecond})

	const n = 100
	want := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		p := filepath.Join(dir, fmt.Sprintf("shot-%03d.png", i))
		want[p] = struct{}{}
		require.NoError(t, os.WriteFile(p, []byte("png"), 0o644))
	}

	got := receive(t, paths, n, 10*time.Second)
	assert.Equal(t, want, got)
}

func TestWatchInitialScan(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "old.png")
	require.NoError(t, os.WriteFile(existing, []byte("png"), 0o644))

	paths, _ := startTestWatcher(t, Config{Roots: []string{dir}, InitialScan: true})

	got := receive(t, paths, 1, 5*time.Second)
	assert.Contains(t, got, existing)
}

func TestWatchClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	paths, cancel := startTestWatcher(t, Config{Roots: []string{dir}, Debounce: time.Millisecond})

	cancel()

	select {
	case _, ok := <-paths:
		assert.False(t, ok, "path channel closes after cancellation")
	case <-time.After(5 * time.Second):
		t.Fatal("path channel did not close")
	}
}
