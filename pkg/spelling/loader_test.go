package spelling

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDictionary(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadReader_Grammar(t *testing.T) {
	content := strings.Join([]string{
		"# words",
		"alpha",
		"  beta  ",
		"Gamma",
		"C# # a language",
		"x86",
		"New York",
		"new jersey",
		"recieve:receive",
		"key::value",
		"",
		"ab",
	}, "\n")

	result, err := LoadReader(strings.NewReader(content), LoadOptions{MinWordLength: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta"}, result.List.Words())
	assert.Equal(t, []string{"Gamma"}, result.CaseSensitiveList.Words())
	assert.Equal(t, []string{"key:value", "x86"}, result.List.NonWords())
	assert.Equal(t, []string{"C#"}, result.CaseSensitiveList.NonWords())
	assert.Len(t, result.CaseSensitiveList.Sequences("New"), 1)
	assert.Len(t, result.List.Sequences("NEW"), 1)

	values, ok := result.Fixes.TryGetValue("recieve")
	assert.True(t, ok)
	assert.Equal(t, []string{"receive"}, values)
}

func TestLoadReader_IgnoreCase(t *testing.T) {
	result, err := LoadReader(strings.NewReader("Gamma\nNew York\n"), LoadOptions{IgnoreCase: true})
	require.NoError(t, err)

	assert.True(t, result.List.Contains("gamma"))
	assert.Equal(t, 0, result.CaseSensitiveList.Len())
	assert.Len(t, result.List.Sequences("new"), 1)
}

func TestLoadReader_FixKeyLength(t *testing.T) {
	result, err := LoadReader(strings.NewReader("ab:abc\nteh:the\n"), LoadOptions{MinWordLength: 3})
	require.NoError(t, err)

	assert.False(t, result.Fixes.Contains("ab"))
	assert.True(t, result.Fixes.Contains("teh"))
}

func TestLoad_PrunesFixes(t *testing.T) {
	dir := t.TempDir()
	writeDictionary(t, dir, "words.txt", "acess\nthe\n")
	writeDictionary(t, dir, "fixes.txt", "acess:access\nteh:the\nfoo:bar\nbar:baz\n")

	result, err := Load([]string{dir}, LoadOptions{})
	require.NoError(t, err)

	assert.False(t, result.Fixes.Contains("acess"), "a known word is not a misspelling")
	assert.False(t, result.Fixes.Contains("bar"), "a correction is not a misspelling")
	assert.True(t, result.Fixes.Contains("teh"))
	assert.True(t, result.Fixes.Contains("foo"))
}

func TestLoad_PrunesExactCorrectionsOnly(t *testing.T) {
	result, err := LoadReader(strings.NewReader("teh:the\nThe:Thee\nfoo:bar\nbar:baz\n"), LoadOptions{})
	require.NoError(t, err)

	assert.True(t, result.Fixes.Contains("The"), "corrections match keys exactly")
	assert.False(t, result.Fixes.Contains("bar"))
	assert.True(t, result.Fixes.Contains("teh"))
}

func TestLoadWithFS_PrunesAcrossSources(t *testing.T) {
	fsys := fstest.MapFS{
		"data/words.dic": {Data: []byte("access\n")},
		"data/fixes.dic": {Data: []byte("teh:the\nacess:access\n")},
	}
	user := writeDictionary(t, t.TempDir(), "user.dic", "teh\nfoo:acess\n")

	result, err := LoadWithFS(context.Background(), fsys, "data", []string{user}, LoadOptions{})
	require.NoError(t, err)

	assert.True(t, result.List.Contains("teh"))
	assert.False(t, result.Fixes.Contains("teh"), "a word from any source is not a misspelling")
	assert.False(t, result.Fixes.Contains("acess"), "a correction from any source is not a misspelling")
	assert.True(t, result.Fixes.Contains("foo"))
}

func TestLoadWithFS_MissingPath(t *testing.T) {
	fsys := fstest.MapFS{"data/words.dic": {Data: []byte("alpha\n")}}

	_, err := LoadWithFS(context.Background(), fsys, "data", []string{filepath.Join(t.TempDir(), "missing.dic")}, LoadOptions{})
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLoadFile_DoesNotPrune(t *testing.T) {
	path := writeDictionary(t, t.TempDir(), "fixes.txt", "foo:bar\nbar:baz\n")

	result, err := LoadFile(path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Fixes.Len())
}

func TestLoad_InvalidPath(t *testing.T) {
	dir := t.TempDir()
	writeDictionary(t, dir, "words.txt", "alpha\n")

	_, err := Load([]string{filepath.Join(dir, "words.txt"), filepath.Join(dir, "missing.txt")}, LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestLoadParallel(t *testing.T) {
	dir := t.TempDir()
	writeDictionary(t, dir, "a.txt", "alpha\nteh:the\n")
	writeDictionary(t, dir, "sub/b.txt", "beta\nGamma\n")
	writeDictionary(t, dir, "sub/c.txt", "delta\nteh:ten\n")

	result, err := LoadParallel(context.Background(), []string{dir}, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta", "delta"}, result.List.Words())
	assert.Equal(t, []string{"Gamma"}, result.CaseSensitiveList.Words())

	values, ok := result.Fixes.TryGetValue("teh")
	assert.True(t, ok)
	assert.Equal(t, []string{"ten", "the"}, values)

	_, err = LoadParallel(context.Background(), []string{filepath.Join(dir, "nope")}, LoadOptions{})
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"dict/words.txt": {Data: []byte("alpha\nbeta\n")},
		"dict/fixes.txt": {Data: []byte("alpah:alpha\n")},
	}

	result, err := LoadFS(fsys, "dict", LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.List.Len())
	assert.True(t, result.Fixes.Contains("alpah"))
}

func TestLoadedDataDrivesChecker(t *testing.T) {
	result, err := LoadReader(strings.NewReader("live\nand\nnot\nNew York\n"), LoadOptions{})
	require.NoError(t, err)

	checker := NewSpellchecker(NewSpellingDataFromResult(result), DefaultOptions())
	matches := checker.AnalyzeText("I live in New York and not New Jersey")

	assert.Equal(t, []string{"New", "Jersey"}, matchValues(matches))
}

func TestLoadResult_Merge(t *testing.T) {
	a, err := LoadReader(strings.NewReader("alpha\nGamma\nteh:the\n"), LoadOptions{})
	require.NoError(t, err)
	b, err := LoadReader(strings.NewReader("beta\nx86\nnew york\nteh:ten\n"), LoadOptions{})
	require.NoError(t, err)

	merged := a.Merge(b)

	assert.Equal(t, []string{"alpha", "beta"}, merged.List.Words())
	assert.Equal(t, []string{"Gamma"}, merged.CaseSensitiveList.Words())
	assert.Equal(t, []string{"x86"}, merged.List.NonWords())
	assert.Equal(t, 1, merged.List.SequenceCount())

	values, _ := merged.Fixes.TryGetValue("teh")
	assert.Equal(t, []string{"ten", "the"}, values)

	assert.Equal(t, []string{"alpha"}, a.List.Words(), "the receiver is unchanged")
}

func TestLoadResult_MergePrunesFixes(t *testing.T) {
	a, err := LoadReader(strings.NewReader("access\nteh:the\nacess:access\n"), LoadOptions{})
	require.NoError(t, err)
	b, err := LoadReader(strings.NewReader("teh\nfoo:acess\n"), LoadOptions{})
	require.NoError(t, err)

	merged := a.Merge(b)

	assert.False(t, merged.Fixes.Contains("teh"))
	assert.False(t, merged.Fixes.Contains("acess"))
	values, ok := merged.Fixes.TryGetValue("foo")
	assert.True(t, ok)
	assert.Equal(t, []string{"acess"}, values)
}
