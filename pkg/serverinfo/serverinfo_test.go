package serverinfo

import (
	"context"
	"testing"

	"github.com/Code-Monger/CodeSpeller/pkg/spellcheck"
	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readResource(t *testing.T, handler func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error), uri string) string {
	t.Helper()

	request := mcp.ReadResourceRequest{}
	request.Params.URI = uri

	contents, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	return contents[0].(mcp.TextResourceContents).Text
}

func TestHandleServerInfo(t *testing.T) {
	text := readResource(t, HandleServerInfo, "server://info")
	assert.Contains(t, text, "go_version:")
	assert.Contains(t, text, "uptime_seconds:")
}

func TestHandleDictionaryInfo(t *testing.T) {
	data := spelling.NewSpellingData(
		spelling.NewWordList(spelling.FoldComparer, []string{"alpha", "beta"}, nil, []spelling.WordSequence{spelling.NewWordSequence("New", "York")}),
		spelling.NewWordList(spelling.OrdinalComparer, []string{"GitHub"}, nil, nil),
		nil,
		nil,
	)
	dictionary = spellcheck.NewDictionaryFromData(data)
	t.Cleanup(func() { dictionary = nil })

	text := readResource(t, HandleDictionaryInfo, "spelling://dictionary")
	assert.Contains(t, text, "words: 2\n")
	assert.Contains(t, text, "case_sensitive_words: 1\n")
	assert.Contains(t, text, "sequences: 1\n")
	assert.Contains(t, text, "supported_languages: Go, JavaScript, Python, Java, C#\n")
}
