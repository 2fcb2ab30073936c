package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration of the spelling services
type Config struct {
	// Dictionary files or directories loaded on top of the embedded dictionary
	DictionaryPaths []string `yaml:"dictionary_paths"`

	// Length bounds of flagged values
	MinWordLength int `yaml:"min_word_length"`
	MaxWordLength int `yaml:"max_word_length"`

	// Files that receive the words and fixes accepted in a session
	UserDictionary string `yaml:"user_dictionary"`
	FixList        string `yaml:"fix_list"`

	// Split hyphenated words found in comments and strings
	SplitHyphens bool `yaml:"split_hyphens"`

	// Reload the dictionaries when one of their files changes
	Watch bool `yaml:"watch"`

	// Directory for stats and saved dictionaries
	DataDir string `yaml:"data_dir"`
}

var (
	config     *Config
	configOnce sync.Once
)

// GetConfig returns the configuration read from .env and the environment
func GetConfig() *Config {
	configOnce.Do(func() {
		// Load .env file if it exists
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[Config] Error loading .env file: %v", err)
		}

		config = FromEnv()
	})

	return config
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		MinWordLength: 3,
		MaxWordLength: math.MaxInt,
		SplitHyphens:  true,
		DataDir:       filepath.Join(".", "data"),
	}
}

// FromEnv returns the defaults overridden by SPELL_* environment variables
func FromEnv() *Config {
	c := Default()

	if paths := getEnv("SPELL_DICTIONARY_PATHS", ""); paths != "" {
		c.DictionaryPaths = SplitList(paths)
	}
	c.MinWordLength = getEnvInt("SPELL_MIN_WORD_LENGTH", c.MinWordLength)
	c.MaxWordLength = getEnvInt("SPELL_MAX_WORD_LENGTH", c.MaxWordLength)
	c.UserDictionary = getEnv("SPELL_USER_DICTIONARY", c.UserDictionary)
	c.FixList = getEnv("SPELL_FIX_LIST", c.FixList)
	c.SplitHyphens = getEnvBool("SPELL_SPLIT_HYPHENS", c.SplitHyphens)
	c.Watch = getEnvBool("SPELL_WATCH", c.Watch)
	c.DataDir = getEnv("SPELL_DATA_DIR", c.DataDir)

	return c
}

// LoadFile overrides the fields of c that are set in a YAML file
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	return nil
}

// Validate checks the length bounds
func (c *Config) Validate() error {
	if c.MinWordLength < 1 {
		return fmt.Errorf("min word length must be at least 1, got %d", c.MinWordLength)
	}
	if c.MaxWordLength < c.MinWordLength {
		return fmt.Errorf("max word length %d is less than min word length %d", c.MaxWordLength, c.MinWordLength)
	}
	return nil
}

// SpellingOptions returns the spellchecker options described by c
func (c *Config) SpellingOptions() spelling.Options {
	opts := spelling.DefaultOptions()
	opts.MinWordLength = c.MinWordLength
	opts.MaxWordLength = c.MaxWordLength
	if !c.SplitHyphens {
		opts.TextSplitMode = spelling.SplitCase
	}
	return opts
}

// UserDictionaryPath returns the user dictionary file, defaulting to the data directory
func (c *Config) UserDictionaryPath() string {
	if c.UserDictionary != "" {
		return c.UserDictionary
	}
	return filepath.Join(c.DataDir, "user.dic")
}

// FixListPath returns the fix list file, defaulting to the data directory
func (c *Config) FixListPath() string {
	if c.FixList != "" {
		return c.FixList
	}
	return filepath.Join(c.DataDir, "fixes.dic")
}

// SplitList splits a comma or path-list separated value, dropping empty items
func SplitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == os.PathListSeparator
	})

	var items []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			items = append(items, f)
		}
	}
	return items
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[Config] Ignoring invalid %s=%q: %v", key, value, err)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("[Config] Ignoring invalid %s=%q: %v", key, value, err)
		return defaultValue
	}
	return b
}
