package watcher_test

import (
	"sort"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weft/internal/adapters/watcher"
)

func TestNewDebouncer(t *testing.T) {
	d := watcher.NewDebouncer(50*time.Millisecond, func([]string) {})
	require.NotNil(t, d)
}

func TestDebouncer_Add_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			callCount++
			receivedPaths = paths
		})

		d.Add("/project/taghelpers.bin")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, callCount)
		assert.Equal(t, []string{"/project/taghelpers.bin"}, receivedPaths)
	})
}

func TestDebouncer_Add_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			callCount++
			receivedPaths = paths
		})

		// Rapid events within the window, including duplicates.
		d.Add("/project/a.bin")
		time.Sleep(20 * time.Millisecond)
		d.Add("/project/b.bin")
		time.Sleep(20 * time.Millisecond)
		d.Add("/project/a.bin")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, callCount)
		sort.Strings(receivedPaths)
		assert.Equal(t, []string{"/project/a.bin", "/project/b.bin"}, receivedPaths)
	})
}

func TestDebouncer_Flush_Synchronous(t *testing.T) {
	var mu sync.Mutex
	var receivedPaths []string

	d := watcher.NewDebouncer(time.Hour, func(paths []string) {
		mu.Lock()
		defer mu.Unlock()
		receivedPaths = paths
	})

	d.Add("/project/a.bin")
	d.Flush()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/project/a.bin"}, receivedPaths)
}

func TestDebouncer_Flush_Empty(t *testing.T) {
	var called bool
	d := watcher.NewDebouncer(time.Hour, func([]string) { called = true })

	d.Flush()

	assert.False(t, called)
}
