package session

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBase(words ...string) *spelling.SpellingData {
	return spelling.NewSpellingData(spelling.NewWordList(spelling.FoldComparer, words, nil, nil), nil, nil, nil)
}

func TestStoreCreateGetList(t *testing.T) {
	store := NewStore(nil)

	first := store.Create("/src")
	second := store.Create("")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, ".", second.RootDir)

	info, err := store.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "/src", info.RootDir)

	list := store.List()
	require.Len(t, list, 2)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDataIsPerSession(t *testing.T) {
	base := newBase("hello")
	store := NewStore(func() *spelling.SpellingData { return base })

	a := store.Create(".")
	b := store.Create(".")

	require.NoError(t, store.AddWord(a.ID, "wrold"))

	dataA, err := store.Data(a.ID)
	require.NoError(t, err)
	dataB, err := store.Data(b.ID)
	require.NoError(t, err)

	assert.True(t, dataA.Contains("wrold"))
	assert.False(t, dataB.Contains("wrold"))
	assert.False(t, base.Contains("wrold"))

	// An empty ID selects the base snapshot
	data, err := store.Data("")
	require.NoError(t, err)
	assert.Same(t, base, data)
}

func TestStoreAddFix(t *testing.T) {
	store := NewStore(func() *spelling.SpellingData { return newBase() })
	sess := store.Create(".")

	require.NoError(t, store.AddFix(sess.ID, "teh", "the"))
	// Different casing: only the correction is kept
	require.NoError(t, store.AddFix(sess.ID, "html", "HTML"))

	info, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []Fix{{Key: "teh", Value: "the"}}, info.Fixes)
	assert.Equal(t, []string{"the", "HTML"}, info.Words)

	data, err := store.Data(sess.ID)
	require.NoError(t, err)
	assert.True(t, data.Fixes().Contains("teh"))
	assert.False(t, data.Fixes().Contains("html"))
	assert.True(t, data.Contains("HTML"))
}

func TestStoreIgnore(t *testing.T) {
	store := NewStore(nil)
	sess := store.Create(".")

	require.NoError(t, store.Ignore(sess.ID, "qwzx"))
	require.NoError(t, store.Ignore(sess.ID, "qwzx"))

	info, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"qwzx"}, info.Ignored)

	data, err := store.Data(sess.ID)
	require.NoError(t, err)
	assert.True(t, data.Contains("qwzx"))

	assert.ErrorIs(t, store.Ignore(sess.ID, ""), ErrEmptyValue)
	assert.ErrorIs(t, store.Ignore("missing", "value"), ErrNotFound)
}

func TestStoreReplaysOnNewBase(t *testing.T) {
	var current atomic.Pointer[spelling.SpellingData]
	current.Store(newBase("alpha"))

	store := NewStore(current.Load)
	sess := store.Create(".")
	require.NoError(t, store.AddWord(sess.ID, "gamma"))

	// The dictionary is reloaded
	current.Store(newBase("beta"))

	data, err := store.Data(sess.ID)
	require.NoError(t, err)
	assert.True(t, data.Contains("beta"))
	assert.True(t, data.Contains("gamma"))
	assert.False(t, data.Contains("alpha"))
}

func TestStoreSave(t *testing.T) {
	dir := t.TempDir()
	userDict := filepath.Join(dir, "user.dic")
	fixList := filepath.Join(dir, "fixes.dic")

	require.NoError(t, os.WriteFile(userDict, []byte("existing\n"), 0644))

	store := NewStore(nil)
	sess := store.Create(dir)
	require.NoError(t, store.AddWord(sess.ID, "zebra"))
	require.NoError(t, store.AddFix(sess.ID, "recieve", "receive"))

	require.NoError(t, store.Save(sess.ID, userDict, fixList))

	words, err := os.ReadFile(userDict)
	require.NoError(t, err)
	assert.Equal(t, "existing\nreceive\nzebra\n", string(words))

	fixes, err := os.ReadFile(fixList)
	require.NoError(t, err)
	assert.Equal(t, "recieve:receive\n", string(fixes))
}

func TestStoreResolveRelativePath(t *testing.T) {
	store := NewStore(nil)
	sess := store.Create("/work")

	assert.Equal(t, filepath.Join("/work", "main.go"), store.ResolveRelativePath("main.go", sess.ID))
	assert.Equal(t, "/abs/file.go", store.ResolveRelativePath("/abs/file.go", sess.ID))
	assert.Equal(t, "main.go", store.ResolveRelativePath("main.go", "unknown"))
}

func TestHandleSession(t *testing.T) {
	previous := sessionStore
	sessionStore = NewStore(nil)
	t.Cleanup(func() { sessionStore = previous })

	call := func(args map[string]interface{}) (*mcp.CallToolResult, error) {
		request := mcp.CallToolRequest{}
		request.Params.Arguments = args
		return HandleSession(context.Background(), request)
	}

	result, err := call(map[string]interface{}{"operation": "create", "root_dir": "/src"})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	sessions := sessionStore.List()
	require.Len(t, sessions, 1)
	id := sessions[0].ID
	assert.Contains(t, result.Content[0].(mcp.TextContent).Text, id)

	_, err = call(map[string]interface{}{"operation": "add_word", "session_id": id, "word": "frobnicate"})
	require.NoError(t, err)

	result, err = call(map[string]interface{}{"operation": "get", "session_id": id})
	require.NoError(t, err)
	assert.Contains(t, result.Content[0].(mcp.TextContent).Text, "frobnicate")

	_, err = call(map[string]interface{}{"operation": "get"})
	assert.Error(t, err)

	_, err = call(map[string]interface{}{"operation": "rename", "session_id": id})
	assert.Error(t, err)

	request := mcp.ReadResourceRequest{}
	request.Params.URI = resourcePrefix + id
	contents, err := HandleSessionResource(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, "frobnicate")

	_, err = call(map[string]interface{}{"operation": "delete", "session_id": id})
	require.NoError(t, err)
	assert.Empty(t, sessionStore.List())
}
