package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherAdd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "forms.go")
	require.NoError(t, os.WriteFile(src, []byte(formSource), 0o644))

	g := New(Options{}, nil)
	w, err := NewWatcher(g)
	require.NoError(t, err)

	require.NoError(t, w.Add(src))
	assert.Equal(t, 1, w.Sources())
	require.ErrorIs(t, w.Add(src), ErrAlreadyWatching)
	require.Error(t, w.Add(filepath.Join(dir, "missing.go")))

	gen := g.OutputPath(src)
	require.NoError(t, os.WriteFile(gen, []byte("package forms\n"), 0o644))
	require.Error(t, w.Add(gen))

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	other := filepath.Join(dir, "other.go")
	require.NoError(t, os.WriteFile(other, []byte("package forms\n"), 0o644))
	require.ErrorIs(t, w.Add(other), ErrWatcherClosed)
}

func TestWatcherRegeneratesOnWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "forms.go")
	require.NoError(t, os.WriteFile(src, []byte(formSource), 0o644))

	results := make(chan Result, 4)
	g := New(Options{}, nil)
	w, err := NewWatcher(g,
		WithDebounce(20*time.Millisecond),
		WithResultHandler(func(r Result) { results <- r }),
	)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(src))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	updated := formSource + "\ntype Note struct {\n\tText string\n\tj    history.Journal[Note]\n}\n"
	require.NoError(t, os.WriteFile(src, []byte(updated), 0o644))

	select {
	case r := <-results:
		require.NoError(t, r.Err)
		abs, _ := filepath.Abs(src)
		assert.Equal(t, abs, r.Source)
		code, err := os.ReadFile(r.Output)
		require.NoError(t, err)
		assert.Contains(t, string(code), "func (n *Note) Revert() error")
	case <-time.After(5 * time.Second):
		t.Fatal("no regeneration after write")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcherReportsErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "forms.go")
	require.NoError(t, os.WriteFile(src, []byte(formSource), 0o644))

	results := make(chan Result, 4)
	w, err := NewWatcher(New(Options{}, nil),
		WithDebounce(0),
		WithResultHandler(func(r Result) { results <- r }),
	)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(src))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(src, []byte("package forms\n\ntype {"), 0o644))

	select {
	case r := <-results:
		require.Error(t, r.Err)
		assert.Empty(t, r.Output)
	case <-time.After(5 * time.Second):
		t.Fatal("no result after write")
	}
}
