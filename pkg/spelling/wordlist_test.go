package spelling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordList_Contains(t *testing.T) {
	list := NewWordList(FoldComparer, []string{"alpha", "Beta"}, []string{"x86"}, nil)

	assert.True(t, list.Contains("ALPHA"))
	assert.True(t, list.Contains("beta"))
	assert.False(t, list.Contains("x86"))
	assert.True(t, list.ContainsNonWord("X86"))
	assert.Equal(t, 2, list.Len())

	ordinal := NewWordList(OrdinalComparer, []string{"Beta"}, nil, nil)
	assert.True(t, ordinal.Contains("Beta"))
	assert.False(t, ordinal.Contains("beta"))
}

func TestWordList_AddValues(t *testing.T) {
	list := NewWordList(FoldComparer, []string{"alpha"}, []string{"x86"}, []WordSequence{NewWordSequence("new", "york")})

	next := list.AddValues("beta", "ALPHA")

	assert.False(t, list.Contains("beta"))
	assert.True(t, next.Contains("beta"))
	assert.Equal(t, 2, next.Len())
	assert.True(t, next.ContainsNonWord("x86"))
	assert.Equal(t, 1, next.SequenceCount())

	assert.Same(t, list, list.AddValue("Alpha"), "adding a known value returns the same list")
}

func TestWordList_AddValues_ManyLayers(t *testing.T) {
	list := EmptyWordList(FoldComparer)
	var lists []*WordList

	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliett", "kilo", "lima"}
	for _, w := range words {
		list = list.AddValue(w)
		lists = append(lists, list)
	}

	assert.Equal(t, 12, list.Len())
	assert.Equal(t, words, list.Words())
	for i, l := range lists {
		assert.Equal(t, i+1, l.Len())
	}
}

func TestWordList_Sequences(t *testing.T) {
	list := NewWordList(FoldComparer, nil, nil, []WordSequence{
		NewWordSequence("new", "york"),
		NewWordSequence("new", "york", "city"),
		NewWordSequence("single"),
	})

	seqs := list.Sequences("NEW")
	require.Len(t, seqs, 2)
	assert.Equal(t, "new york city", seqs[0].String())
	assert.Equal(t, "new york", seqs[1].String())
	assert.Empty(t, list.Sequences("single"))
}

func TestWordList_IntersectExcept(t *testing.T) {
	a := NewWordList(FoldComparer, []string{"alpha", "beta", "gamma"}, nil, nil)
	b := NewWordList(FoldComparer, []string{"BETA", "delta"}, nil, nil)

	assert.Equal(t, []string{"beta"}, a.Intersect(b).Words())
	assert.Equal(t, []string{"alpha", "gamma"}, a.Except(b).Words())
}

func TestWordList_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict", "words.txt")

	list := NewWordList(
		FoldComparer,
		[]string{"gamma", "alpha", "beta", "well-known"},
		[]string{"x86", "key:value"},
		[]WordSequence{NewWordSequence("new", "york")},
	)

	require.NoError(t, list.Save(path, false))

	result, err := Load([]string{path}, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, list.Words(), result.List.Words())
	assert.Equal(t, list.NonWords(), result.List.NonWords())
	assert.Equal(t, 1, result.List.SequenceCount())
	assert.Equal(t, 0, result.CaseSensitiveList.Len())
	assert.Equal(t, 0, result.Fixes.Len())

	// Added values keep their kind across a save and load
	list = EmptyWordList(FoldComparer).AddValues("x86", "utf8", "parser", "Go", "a")
	assert.Equal(t, []string{"Go", "parser"}, list.Words())
	assert.Equal(t, []string{"a", "utf8", "x86"}, list.NonWords())

	require.NoError(t, list.Save(path, false))

	result, err = Load([]string{path}, LoadOptions{IgnoreCase: true})
	require.NoError(t, err)
	assert.Equal(t, list.Words(), result.List.Words())
	assert.Equal(t, list.NonWords(), result.List.NonWords())

	result, err = Load([]string{path}, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"parser"}, result.List.Words())
	assert.Equal(t, []string{"Go"}, result.CaseSensitiveList.Words(), "mixed-case words load case-sensitive")
	assert.Equal(t, list.NonWords(), result.List.NonWords())
}

func TestWordList_NonStandaloneValuesAreNonWords(t *testing.T) {
	list := NewWordList(FoldComparer, []string{"parser", "x86", "b"}, nil, nil)

	assert.Equal(t, []string{"parser"}, list.Words())
	assert.Equal(t, []string{"b", "x86"}, list.NonWords())
	assert.False(t, list.Contains("x86"))
	assert.True(t, list.ContainsNonWord("X86"))
}

func TestWordList_CoversNonWord(t *testing.T) {
	list := NewWordList(FoldComparer, nil, []string{"utf8", "x86"}, nil)

	assert.True(t, list.CoversNonWord("utf8Encoder", 0, 3))
	assert.True(t, list.CoversNonWord("myUTF8", 2, 3), "case is folded")
	assert.True(t, list.CoversNonWord("useX86Asm", 3, 1))
	assert.False(t, list.CoversNonWord("utf8Encoder", 4, 7))
	assert.False(t, list.CoversNonWord("utf", 0, 3))

	next := list.AddValues("encoder")
	assert.True(t, next.CoversNonWord("utf8Encoder", 0, 3), "the index survives added words")

	ordinal := NewWordList(OrdinalComparer, nil, []string{"C#"}, nil)
	assert.True(t, ordinal.CoversNonWord("C#Parser", 0, 1))
	assert.False(t, ordinal.CoversNonWord("c#Parser", 0, 1))

	assert.False(t, EmptyWordList(FoldComparer).CoversNonWord("utf8", 0, 3))
}

func TestWordList_SaveMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("zeta\nAlpha\n"), 0644))

	list := NewWordList(FoldComparer, []string{"alpha", "beta"}, nil, nil)
	require.NoError(t, list.Save(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\nzeta\n", string(data))
}

func TestFixList(t *testing.T) {
	fixes := NewFixList(map[string][]string{
		"teh":     {"the"},
		"recieve": {"receive"},
		"empty":   {},
	})

	assert.Equal(t, 2, fixes.Len())
	assert.True(t, fixes.Contains("TEH"))
	assert.False(t, fixes.Contains("empty"))

	key, ok := fixes.TryGetKey("Recieve")
	assert.True(t, ok)
	assert.Equal(t, "recieve", key)

	next := fixes.Add("teh", "ten")
	values, ok := next.TryGetValue("teh")
	assert.True(t, ok)
	assert.Equal(t, []string{"ten", "the"}, values)

	values, _ = fixes.TryGetValue("teh")
	assert.Equal(t, []string{"the"}, values, "the original list is unchanged")

	assert.Same(t, next, next.Add("teh", "the"))
	assert.Equal(t, []string{"recieve:receive", "teh:ten", "teh:the"}, next.Lines())
}

func TestFixList_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixes.txt")

	fixes := NewFixList(map[string][]string{"teh": {"the"}, "wrod": {"word", "wood"}})
	require.NoError(t, fixes.Save(path, false))

	result, err := LoadFile(path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, fixes.Lines(), result.Fixes.Lines())
}

func TestSaveDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.dic")

	result := LoadResult{
		List:              NewWordList(FoldComparer, []string{"zebra", "Apple"}, nil, nil),
		CaseSensitiveList: NewWordList(OrdinalComparer, []string{"GitHub", "apple", "zebra"}, nil, nil),
		Fixes:             NewFixList(map[string][]string{"teh": {"the"}}),
	}

	lines, err := SaveDictionary(path, result, OrdinalComparer)
	require.NoError(t, err)
	assert.Equal(t, 5, lines)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Apple\nGitHub\napple\nteh:the\nzebra\n", string(data))
}
