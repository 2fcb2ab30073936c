package spellcheck

import (
	"context"
	"embed"

	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
)

//go:embed data
var embeddedFS embed.FS

// loadDictionaries loads the dictionary files shipped with the binary
// together with the files at paths
func loadDictionaries(ctx context.Context, paths []string, opts spelling.LoadOptions) (spelling.LoadResult, error) {
	return spelling.LoadWithFS(ctx, embeddedFS, "data", paths, opts)
}
