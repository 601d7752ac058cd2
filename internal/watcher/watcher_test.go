package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/mvcgen/internal/parser"
)

func TestEventTypeString(t *testing.T) {
	testCases := []struct {
		eventType EventType
		expected  string
	}{
		{EventTypeCreated, "created"},
		{EventTypeModified, "modified"},
		{EventTypeDeleted, "deleted"},
		{EventTypeRenamed, "renamed"},
		{EventType(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.eventType.String())
		})
	}
}

func TestChangeEventGone(t *testing.T) {
	assert.True(t, ChangeEvent{Type: EventTypeDeleted}.Gone())
	assert.True(t, ChangeEvent{Type: EventTypeRenamed}.Gone())
	assert.False(t, ChangeEvent{Type: EventTypeModified}.Gone())
}

func TestFilters(t *testing.T) {
	tests := []struct {
		path   string
		source bool
		hidden bool
	}{
		{"controllers/home_controller.go", true, true},
		{"views/index.html", true, true},
		{"views/index.gen.go", false, true},
		{"controllers/mod.gen.go", false, true},
		{"controllers/helpers.go", false, true},
		{"views/.index.html.swp", false, false},
		{"views/.hidden.html", true, false},
		{"views/index.html~", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.source, SourceFilter(tt.path))
			assert.Equal(t, tt.hidden, NoHiddenFilter(tt.path))
		})
	}
}

func TestConvert(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.html")
	require.NoError(t, os.WriteFile(file, []byte("abc"), 0o644))

	ev := convert(fsnotify.Event{Name: file, Op: fsnotify.Create})
	assert.Equal(t, EventTypeCreated, ev.Type)
	assert.Equal(t, int64(3), ev.Size)
	assert.False(t, ev.ModTime.IsZero())

	assert.Equal(t, EventTypeModified, convert(fsnotify.Event{Name: file, Op: fsnotify.Write}).Type)
	assert.Equal(t, EventTypeRenamed, convert(fsnotify.Event{Name: file, Op: fsnotify.Rename}).Type)

	gone := convert(fsnotify.Event{Name: file + ".missing", Op: fsnotify.Remove})
	assert.Equal(t, EventTypeDeleted, gone.Type)
	assert.Zero(t, gone.Size)
}

func TestDebouncerGroupsAndDeduplicates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDebouncer(30 * time.Millisecond)
	go d.start(ctx)

	d.Add(ChangeEvent{Type: EventTypeCreated, Path: "b.html"})
	d.Add(ChangeEvent{Type: EventTypeModified, Path: "a.html"})
	d.Add(ChangeEvent{Type: EventTypeDeleted, Path: "b.html"})

	select {
	case events := <-d.Output():
		require.Len(t, events, 2)
		assert.Equal(t, "a.html", events[0].Path)
		assert.Equal(t, "b.html", events[1].Path)
		assert.Equal(t, EventTypeDeleted, events[1].Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no batch emitted")
	}
}

func TestDebouncerFlushEmpty(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	d.flush()
	assert.Empty(t, d.Output())
}

func TestAddPathErrors(t *testing.T) {
	fw, err := NewFileWatcher(DefaultDelay, nil)
	require.NoError(t, err)
	defer fw.Stop()

	dir := t.TempDir()
	assert.Error(t, fw.AddPath(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "f.html")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.ErrorContains(t, fw.AddPath(file), "is not a directory")

	assert.Error(t, fw.WatchDirs(parser.Dirs{Root: dir, Controllers: "controllers", Views: "views"}))
}

func TestFileWatcherDeliversSourceChanges(t *testing.T) {
	root := t.TempDir()
	dirs := parser.Dirs{Root: root, Controllers: "controllers", Views: "views"}
	require.NoError(t, os.Mkdir(dirs.ControllerPath(), 0o755))
	require.NoError(t, os.Mkdir(dirs.ViewPath(), 0o755))

	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	require.NoError(t, err)
	fw.AddFilter(SourceFilter)
	fw.AddFilter(NoHiddenFilter)

	var mu sync.Mutex
	seen := map[string]bool{}
	fw.AddHandler(func(_ context.Context, events []ChangeEvent) error {
		mu.Lock()
		defer mu.Unlock()
		for _, ev := range events {
			seen[filepath.Base(ev.Path)] = true
		}
		return nil
	})

	require.NoError(t, fw.WatchDirs(dirs))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, fw.Start(ctx))

	write := func(path string) {
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
	write(filepath.Join(dirs.ViewPath(), "index.html"))
	write(filepath.Join(dirs.ViewPath(), "index.gen.go"))
	write(filepath.Join(dirs.ControllerPath(), "home_controller.go"))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen["index.html"] && seen["home_controller.go"]
	}, 3*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.False(t, seen["index.gen.go"])
	mu.Unlock()

	cancel()
	require.NoError(t, fw.Stop())
	fw.Wait()
}
