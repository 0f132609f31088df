package cookies

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	defaultBlinkCookieFile    = "Cookies"
	defaultBlinkProfilePrefix = "Profile"
)

// BlinkBrowserManager discovers the profiles of a Chromium-family browser by
// scanning its user data folder.
type BlinkBrowserManager struct {
	Name         string
	DataFolder   string
	PrimaryLevel int
	// CookieFileName is the database path relative to a profile folder.
	CookieFileName string
	// DefaultFolder is the folder of the default profile.
	DefaultFolder string
	// ProfilePrefix selects the other profile folders (case-insensitive).
	ProfilePrefix string

	opts []Option
}

// NewBlinkBrowserManager creates a manager for the browser whose user data
// folder is dataFolder.
func NewBlinkBrowserManager(name, dataFolder string, primaryLevel int, opts ...Option) *BlinkBrowserManager {
	return &BlinkBrowserManager{
		Name:           name,
		DataFolder:     dataFolder,
		PrimaryLevel:   primaryLevel,
		CookieFileName: defaultBlinkCookieFile,
		DefaultFolder:  defaultProfileName,
		ProfilePrefix:  defaultBlinkProfilePrefix,
		opts:           opts,
	}
}

func (m *BlinkBrowserManager) EngineIDs() []string {
	return []string{EngineBlink}
}

// CookieImporters always returns the default profile first, whether or not
// its database exists, followed by every prefixed profile folder holding a
// cookie database.
func (m *BlinkBrowserManager) CookieImporters() []Importer {
	importers := []Importer{m.defaultProfile()}
	return append(importers, m.profiles()...)
}

func (m *BlinkBrowserManager) CookieImporter(config BrowserConfig) Importer {
	return NewBlinkImporter(config, m.PrimaryLevel, nil, m.opts...)
}

func (m *BlinkBrowserManager) defaultProfile() Importer {
	cookiePath := ""
	if m.DataFolder != "" {
		cookiePath = filepath.Join(m.DataFolder, m.DefaultFolder, m.CookieFileName)
	}
	conf := NewBrowserConfig(m.Name, m.DefaultFolder, cookiePath, EngineBlink)
	return NewBlinkImporter(conf, m.PrimaryLevel, nil, m.opts...)
}

func (m *BlinkBrowserManager) profiles() []Importer {
	if m.DataFolder == "" {
		return nil
	}
	o := newOptions(m.opts)
	if ok, err := afero.DirExists(o.fs, m.DataFolder); err != nil || !ok {
		return nil
	}
	entries, err := afero.ReadDir(o.fs, m.DataFolder)
	if err != nil {
		o.log.Warning("%s: cannot list profiles: %v", m.Name, err)
		return nil
	}

	prefix := strings.ToLower(m.ProfilePrefix)
	var importers []Importer
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(strings.ToLower(entry.Name()), prefix) {
			continue
		}
		cookiePath := filepath.Join(m.DataFolder, entry.Name(), m.CookieFileName)
		if !isRegularFile(o.fs, cookiePath) {
			continue
		}
		conf := NewBrowserConfig(m.Name, entry.Name(), cookiePath, EngineBlink)
		importers = append(importers, NewBlinkImporter(conf, m.PrimaryLevel, nil, m.opts...))
	}
	return importers
}
