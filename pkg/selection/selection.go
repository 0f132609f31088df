// Package selection persists the browser configuration a user picked with
// "cookiegetter select" so later commands can reuse it. The configuration
// is stored as JSON in the OS keyring, with a file-based fallback for
// systems where no keyring service is reachable.
package selection

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/warpdl/cookiegetter/pkg/cookies"
)

// ErrNoSelection is returned by Load when nothing has been saved yet.
var ErrNoSelection = errors.New("selection: no browser selected")

// Store saves, loads and clears the selected BrowserConfig.
type Store interface {
	Save(config cookies.BrowserConfig) error
	Load() (cookies.BrowserConfig, error)
	Clear() error
}

func encode(config cookies.BrowserConfig) (string, error) {
	data, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("encode selection: %w", err)
	}
	return string(data), nil
}

func decode(data string) (cookies.BrowserConfig, error) {
	var config cookies.BrowserConfig
	if err := json.Unmarshal([]byte(data), &config); err != nil {
		return cookies.BrowserConfig{}, fmt.Errorf("decode selection: %w", err)
	}
	if config.EngineID == "" {
		return cookies.BrowserConfig{}, errors.New("decode selection: missing engine id")
	}
	return config, nil
}

// FallbackStore writes to Primary and falls back to Secondary when Primary
// fails. Loads consult Primary first; a missing selection there is not an
// error until Secondary has been checked too.
//
// A successful Save clears the store it did not write, so Load never returns
// an older selection that was shadowed by the newer one.
type FallbackStore struct {
	Primary   Store
	Secondary Store
}

// NewDefaultStore returns the keyring store backed by a file store in
// configDir.
func NewDefaultStore(configDir string) *FallbackStore {
	return &FallbackStore{
		Primary:   NewKeyringStore(),
		Secondary: NewFileStore(configDir),
	}
}

func (f *FallbackStore) Save(config cookies.BrowserConfig) error {
	if err := f.Primary.Save(config); err != nil {
		if err2 := f.Secondary.Save(config); err2 != nil {
			return errors.Join(err, err2)
		}
		// Best effort: an unreachable Primary cannot shadow Secondary anyway.
		_ = f.Primary.Clear()
		return nil
	}
	_ = f.Secondary.Clear()
	return nil
}

func (f *FallbackStore) Load() (cookies.BrowserConfig, error) {
	config, err := f.Primary.Load()
	if err == nil {
		return config, nil
	}
	return f.Secondary.Load()
}

// Clear removes the selection from both stores. Missing entries are ignored.
func (f *FallbackStore) Clear() error {
	err1 := f.Primary.Clear()
	err2 := f.Secondary.Clear()
	if err1 != nil && err2 != nil {
		return errors.Join(err1, err2)
	}
	return nil
}

var (
	_ Store = (*FallbackStore)(nil)
	_ Store = (*KeyringStore)(nil)
	_ Store = (*FileStore)(nil)
)
