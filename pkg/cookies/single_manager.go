package cookies

import "github.com/spf13/afero"

// SingleStoreManager exposes a browser that keeps exactly one cookie store
// at one of a few well-known locations.
type SingleStoreManager struct {
	Name         string
	EngineID     string
	PrimaryLevel int
	// Candidates are glob patterns tried in order; the first one matching a
	// regular file becomes the store.
	Candidates []string

	opts []Option
}

// NewSingleStoreManager creates a manager for a single-store browser.
func NewSingleStoreManager(name, engineID string, primaryLevel int, candidates []string, opts ...Option) *SingleStoreManager {
	return &SingleStoreManager{
		Name:         name,
		EngineID:     engineID,
		PrimaryLevel: primaryLevel,
		Candidates:   candidates,
		opts:         opts,
	}
}

func (m *SingleStoreManager) EngineIDs() []string {
	return []string{m.EngineID}
}

// CookieImporters returns one importer, bound to no path when no candidate
// exists.
func (m *SingleStoreManager) CookieImporters() []Importer {
	conf := NewBrowserConfig(m.Name, defaultProfileName, m.findStore(), m.EngineID)
	imp := m.CookieImporter(conf)
	if imp == nil {
		return nil
	}
	return []Importer{imp}
}

func (m *SingleStoreManager) CookieImporter(config BrowserConfig) Importer {
	imp, err := NewImporter(config, m.PrimaryLevel, m.opts...)
	if err != nil {
		newOptions(m.opts).log.Warning("%s: %v", m.Name, err)
		return nil
	}
	return imp
}

func (m *SingleStoreManager) findStore() string {
	fs := newOptions(m.opts).fs
	for _, pattern := range m.Candidates {
		matches, err := afero.Glob(fs, pattern)
		if err != nil {
			continue
		}
		for _, match := range matches {
			if isRegularFile(fs, match) {
				return match
			}
		}
	}
	return ""
}
