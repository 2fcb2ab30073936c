package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Code-Monger/CodeSpeller/pkg/config"
	"github.com/Code-Monger/CodeSpeller/pkg/spellcheck"
	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"github.com/Code-Monger/CodeSpeller/pkg/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryPathsCreatesUserFiles(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "project.dic")
	require.NoError(t, os.WriteFile(project, []byte("qux\n"), 0644))

	cfg := config.Default()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.DictionaryPaths = []string{project}

	paths, err := dictionaryPaths(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{project, cfg.UserDictionaryPath(), cfg.FixListPath()}, paths)
	assert.FileExists(t, cfg.UserDictionaryPath())
	assert.FileExists(t, cfg.FixListPath())

	// Existing user files are kept
	require.NoError(t, os.WriteFile(cfg.UserDictionaryPath(), []byte("quuxly\n"), 0644))
	_, err = dictionaryPaths(cfg)
	require.NoError(t, err)
	data, err := os.ReadFile(cfg.UserDictionaryPath())
	require.NoError(t, err)
	assert.Equal(t, "quuxly\n", string(data))
}

func TestEmptyUserDictionaryIsWatched(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")

	paths, err := dictionaryPaths(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dict := spellcheck.NewDictionary(paths, spelling.LoadOptions{})
	require.NoError(t, dict.Load(ctx))
	require.False(t, dict.Data().Contains("frobnicatez"))

	w, err := watcher.New(paths, 50*time.Millisecond, dict.Load)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(cfg.UserDictionaryPath(), []byte("frobnicatez\n"), 0644))

	assert.Eventually(t, func() bool {
		return dict.Data().Contains("frobnicatez")
	}, 5*time.Second, 20*time.Millisecond)
}
