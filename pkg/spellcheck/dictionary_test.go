package spellcheck

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryLoadEmbedded(t *testing.T) {
	dict := NewDictionary(nil, spelling.LoadOptions{})
	assert.Nil(t, dict.Suggester())
	assert.True(t, dict.LoadedAt().IsZero())

	require.NoError(t, dict.Load(context.Background()))

	data := dict.Data()
	assert.True(t, data.Contains("access"))
	assert.True(t, data.Fixes().Contains("recieve"))
	assert.NotNil(t, dict.Suggester())
	assert.False(t, dict.LoadedAt().IsZero())

	// Sequences from the embedded dictionary are honored
	checker := NewChecker(data, spelling.DefaultOptions(), nil)
	assert.Empty(t, checker.Spellchecker().AnalyzeText("New York"))
}

func TestDictionaryLoadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "project.dic"), "# project words\nfrobnicate\nZyzzyva\nqux:quux\n")

	dict := NewDictionary([]string{dir}, spelling.LoadOptions{})
	require.NoError(t, dict.Load(context.Background()))

	data := dict.Data()
	assert.True(t, data.Contains("frobnicate"))
	assert.True(t, data.Contains("Zyzzyva"))
	assert.False(t, data.Contains("zyzzyva"))
	assert.True(t, data.Contains("access"))
	assert.Equal(t, []string{dir}, dict.Paths())
}

func TestDictionaryLoadPrunesAcrossSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.dic")
	writeFile(t, path, "teh\nfoo:acess\n")

	dict := NewDictionary([]string{path}, spelling.LoadOptions{})
	require.NoError(t, dict.Load(context.Background()))

	data := dict.Data()
	assert.True(t, data.Contains("teh"))
	assert.False(t, data.Fixes().Contains("teh"), "a user word overrides a shipped fix")
	assert.False(t, data.Fixes().Contains("acess"), "a user correction overrides a shipped fix")

	values, ok := data.Fixes().TryGetValue("foo")
	assert.True(t, ok)
	assert.Equal(t, []string{"acess"}, values)
}

func TestDictionaryReloadKeepsOldSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.dic")
	writeFile(t, path, "frobnicate\n")

	dict := NewDictionary([]string{path}, spelling.LoadOptions{})
	require.NoError(t, dict.Load(context.Background()))
	before := dict.Data()

	writeFile(t, path, "grault\n")
	require.NoError(t, dict.Load(context.Background()))
	after := dict.Data()

	assert.NotSame(t, before, after)
	assert.True(t, before.Contains("frobnicate"))
	assert.False(t, after.Contains("frobnicate"))
	assert.True(t, after.Contains("grault"))
}

func TestDictionaryLoadMissingPath(t *testing.T) {
	dict := NewDictionary([]string{filepath.Join(t.TempDir(), "missing.dic")}, spelling.LoadOptions{})
	before := dict.Data()

	assert.Error(t, dict.Load(context.Background()))
	assert.Same(t, before, dict.Data())
}

func TestSuggester(t *testing.T) {
	data := newTestData("receive", "message", "world", "count")
	suggester := NewSuggester(data, 3)

	suggestions := suggester.Suggest(data, "mesage", false)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "message", suggestions[0])

	// Casing of the flagged value is kept
	suggestions = suggester.Suggest(data, "Mesage", false)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Message", suggestions[0])

	assert.LessOrEqual(t, len(suggester.Suggest(data, "cont", false)), 3)
}
