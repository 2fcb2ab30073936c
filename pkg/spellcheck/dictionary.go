package spellcheck

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
)

// Dictionary holds the current dictionary snapshot: the embedded dictionary
// merged with the configured files. Reload swaps the snapshot atomically;
// callers holding the previous one keep using it.
type Dictionary struct {
	paths          []string
	opts           spelling.LoadOptions
	maxSuggestions int

	data      atomic.Pointer[spelling.SpellingData]
	suggester atomic.Pointer[Suggester]
	loadedAt  atomic.Int64
}

// NewDictionary creates a dictionary over the given files or directories. It is empty until loaded.
func NewDictionary(paths []string, opts spelling.LoadOptions) *Dictionary {
	d := &Dictionary{
		paths:          append([]string(nil), paths...),
		opts:           opts,
		maxSuggestions: DefaultMaxSuggestions,
	}
	d.data.Store(spelling.NewSpellingData(nil, nil, nil, nil))
	return d
}

// NewDictionaryFromData creates a dictionary over an existing snapshot
func NewDictionaryFromData(data *spelling.SpellingData) *Dictionary {
	d := &Dictionary{maxSuggestions: DefaultMaxSuggestions}
	d.data.Store(data)
	d.suggester.Store(NewSuggester(data, d.maxSuggestions))
	d.loadedAt.Store(time.Now().Unix())
	return d
}

// Load reads the embedded dictionary and the configured files and installs the result
func (d *Dictionary) Load(ctx context.Context) error {
	start := time.Now()

	result, err := loadDictionaries(ctx, d.paths, d.opts)
	if err != nil {
		return err
	}

	data := spelling.NewSpellingDataFromResult(result)
	d.data.Store(data)
	d.suggester.Store(NewSuggester(data, d.maxSuggestions))
	d.loadedAt.Store(time.Now().Unix())

	log.Printf("[Dictionary] Loaded %d words, %d case-sensitive words and %d fixes in %v",
		data.Words().Len(), data.CaseSensitiveWords().Len(), data.Fixes().Len(), time.Since(start).Round(time.Millisecond))

	return nil
}

// Data returns the current snapshot
func (d *Dictionary) Data() *spelling.SpellingData {
	return d.data.Load()
}

// Suggester returns the suggester trained on the current snapshot, or nil before the first load
func (d *Dictionary) Suggester() *Suggester {
	return d.suggester.Load()
}

// Paths returns the configured dictionary paths
func (d *Dictionary) Paths() []string {
	return append([]string(nil), d.paths...)
}

// LoadedAt returns the time of the last successful load
func (d *Dictionary) LoadedAt() time.Time {
	if sec := d.loadedAt.Load(); sec != 0 {
		return time.Unix(sec, 0)
	}
	return time.Time{}
}
