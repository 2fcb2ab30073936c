package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for an unknown session ID
	ErrNotFound = errors.New("session not found")
	// ErrEmptyValue is returned when a word, fix or ignored value is empty
	ErrEmptyValue = errors.New("value must not be empty")
)

// Fix is a correction accepted during a session
type Fix struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Info describes a session
type Info struct {
	ID         string    `json:"session_id"`
	RootDir    string    `json:"root_dir"`
	CreatedAt  time.Time `json:"created_at"`
	LastAccess time.Time `json:"last_access"`
	Words      []string  `json:"words"`
	Fixes      []Fix     `json:"fixes"`
	Ignored    []string  `json:"ignored"`
}

// session holds the values added to the dictionary during a session. The
// values are kept apart from the snapshot so that they can be saved, and
// replayed on top of a reloaded base dictionary.
type session struct {
	info Info
	base *spelling.SpellingData
	data *spelling.SpellingData
}

// Store manages spelling sessions
type Store struct {
	sessions map[string]*session
	baseData func() *spelling.SpellingData
	mutex    sync.RWMutex
}

// NewStore creates a store whose sessions start from the snapshot returned by baseData
func NewStore(baseData func() *spelling.SpellingData) *Store {
	if baseData == nil {
		empty := spelling.NewSpellingData(nil, nil, nil, nil)
		baseData = func() *spelling.SpellingData { return empty }
	}
	return &Store{
		sessions: make(map[string]*session),
		baseData: baseData,
	}
}

// Create starts a session rooted at rootDir
func (s *Store) Create(rootDir string) Info {
	if rootDir == "" {
		rootDir = "."
	}

	now := time.Now()
	sess := &session{
		info: Info{
			ID:         uuid.NewString(),
			RootDir:    rootDir,
			CreatedAt:  now,
			LastAccess: now,
		},
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.sessions[sess.info.ID] = sess
	return sess.info
}

// Get returns the information of a session
func (s *Store) Get(id string) (Info, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return Info{}, err
	}
	return sess.snapshot(), nil
}

// List returns all sessions ordered by creation time
func (s *Store) List() []Info {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	infos := make([]Info, 0, len(s.sessions))
	for _, sess := range s.sessions {
		infos = append(infos, sess.snapshot())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos
}

// Delete removes a session
func (s *Store) Delete(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, err := s.lookup(id); err != nil {
		return err
	}
	delete(s.sessions, id)
	return nil
}

// Data returns the snapshot a session checks against. An empty id returns the base snapshot.
func (s *Store) Data(id string) (*spelling.SpellingData, error) {
	if id == "" {
		return s.base(), nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.current(sess), nil
}

// RootDir returns the root directory of a session, or "." for an unknown session
func (s *Store) RootDir(id string) string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if sess, ok := s.sessions[id]; ok {
		return sess.info.RootDir
	}
	return "."
}

// ResolveRelativePath resolves a relative path against the root directory of a session
func (s *Store) ResolveRelativePath(path, id string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.RootDir(id), path)
}

// AddWord adds a word to the dictionary of a session
func (s *Store) AddWord(id, word string) error {
	if word == "" {
		return ErrEmptyValue
	}
	return s.update(id, func(sess *session, data *spelling.SpellingData) *spelling.SpellingData {
		sess.info.Words = appendUnique(sess.info.Words, word)
		return data.AddWord(word)
	})
}

// AddFix accepts value as the correction of key. The correction becomes a
// known word; the fix is kept only when both have the same casing, so that
// case-adapted fixes still apply.
func (s *Store) AddFix(id, key, value string) error {
	if key == "" || value == "" {
		return ErrEmptyValue
	}
	return s.update(id, func(sess *session, data *spelling.SpellingData) *spelling.SpellingData {
		if spelling.TextCasingEquals(key, value) {
			sess.info.Fixes = append(sess.info.Fixes, Fix{Key: key, Value: value})
			data = data.AddFix(key, value)
		}
		sess.info.Words = appendUnique(sess.info.Words, value)
		return data.AddWord(value)
	})
}

// Ignore makes a session never flag value
func (s *Store) Ignore(id, value string) error {
	if value == "" {
		return ErrEmptyValue
	}
	return s.update(id, func(sess *session, data *spelling.SpellingData) *spelling.SpellingData {
		sess.info.Ignored = appendUnique(sess.info.Ignored, value)
		return data.AddIgnoredValue(value)
	})
}

// Save merges the words and fixes of a session into the user dictionary and fix list files
func (s *Store) Save(id, userDictionaryPath, fixListPath string) error {
	info, err := s.Get(id)
	if err != nil {
		return err
	}

	if len(info.Words) > 0 {
		words := spelling.NewWordList(spelling.FoldComparer, info.Words, nil, nil)
		if err := words.Save(userDictionaryPath, true); err != nil {
			return fmt.Errorf("error saving user dictionary: %w", err)
		}
	}

	if len(info.Fixes) > 0 {
		fixes := make(map[string][]string)
		for _, fix := range info.Fixes {
			fixes[fix.Key] = append(fixes[fix.Key], fix.Value)
		}
		if err := spelling.NewFixList(fixes).Save(fixListPath, true); err != nil {
			return fmt.Errorf("error saving fix list: %w", err)
		}
	}

	return nil
}

func (s *Store) update(id string, apply func(sess *session, data *spelling.SpellingData) *spelling.SpellingData) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.data = apply(sess, s.current(sess))
	return nil
}

// lookup must be called with the lock held
func (s *Store) lookup(id string) (*session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	sess.info.LastAccess = time.Now()
	return sess, nil
}

// current returns the snapshot of a session, replaying its values when the
// base snapshot changed. It must be called with the write lock held.
func (s *Store) current(sess *session) *spelling.SpellingData {
	base := s.base()
	if sess.data != nil && sess.base == base {
		return sess.data
	}

	data := base.AddWords(sess.info.Words...)
	for _, fix := range sess.info.Fixes {
		data = data.AddFix(fix.Key, fix.Value)
	}
	if len(sess.info.Ignored) > 0 {
		data = data.AddIgnoredValues(sess.info.Ignored...)
	}

	sess.base = base
	sess.data = data
	return data
}

func (s *Store) base() *spelling.SpellingData {
	return s.baseData()
}

func (sess *session) snapshot() Info {
	info := sess.info
	info.Words = append([]string(nil), info.Words...)
	info.Fixes = append([]Fix(nil), info.Fixes...)
	info.Ignored = append([]string(nil), info.Ignored...)
	return info
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
