// Package prefs persists user preferences in a small YAML-backed key-value
// store and notifies subscribers when values change. The store replaces the
// original global shared-preference state: it is constructed once at startup
// and passed explicitly to consumers, with change notification through
// Subscribe rather than a global singleton.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Preference keys.
const (
	KeyTheme           = "theme"
	KeyLocale          = "locale"
	KeyDefaultCurrency = "default_currency"
	KeyDynamicColor    = "dynamic_color"
	KeyAppLock         = "app_lock"
	KeyReminderTime    = "reminder_time"
)

// defaults applied when a key has never been set.
var defaults = map[string]any{
	KeyTheme:           "system",
	KeyLocale:          "en",
	KeyDefaultCurrency: "USD",
	KeyDynamicColor:    true,
	KeyAppLock:         false,
	KeyReminderTime:    "",
}

// Listener receives preference change notifications.
type Listener func(key string, value any)

// Store is a persistent preference store. All methods are safe for
// concurrent use.
type Store struct {
	v         *viper.Viper
	path      string
	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

// NewStore opens (or creates) the preference store at path.
func NewStore(path string) (*Store, error) {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine, defaults apply.
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("failed to read preferences: %w", err)
		}
	}

	return &Store{
		v:         v,
		path:      path,
		listeners: make(map[int]Listener),
	}, nil
}

// Set stores a preference, persists the file, and notifies subscribers.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	s.v.Set(key, value)
	err := s.v.WriteConfigAs(s.path)
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	// Notify outside the lock so listeners may call back into the store.
	for _, fn := range listeners {
		fn(key, value)
	}
	return nil
}

// GetString returns a string preference.
func (s *Store) GetString(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetString(key)
}

// GetBool returns a boolean preference.
func (s *Store) GetBool(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetBool(key)
}

// All returns a snapshot of every known preference.
func (s *Store) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]any, len(defaults))
	for key := range defaults {
		snapshot[key] = s.v.Get(key)
	}
	return snapshot
}

// IsKnown reports whether key is a recognized preference.
func IsKnown(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Keys returns the recognized preference keys.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	return keys
}

// Subscribe registers a listener for preference changes and returns a
// function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
