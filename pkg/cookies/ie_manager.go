package cookies

// IEBrowserManager exposes the Internet Explorer cookie store twice: through
// the OS API and through a direct scan of its cache directory.
type IEBrowserManager struct {
	Name     string
	CacheDir string

	opts []Option
}

// NewIEBrowserManager creates a manager whose cache importer scans cacheDir.
func NewIEBrowserManager(name, cacheDir string, opts ...Option) *IEBrowserManager {
	return &IEBrowserManager{Name: name, CacheDir: cacheDir, opts: opts}
}

func (m *IEBrowserManager) EngineIDs() []string {
	return []string{EngineIE, EngineIEFindCache}
}

func (m *IEBrowserManager) CookieImporters() []Importer {
	return []Importer{
		NewIEImporter(NewBrowserConfig(m.Name, defaultProfileName, m.CacheDir, EngineIE), LevelOS, nil, m.opts...),
		NewIEFindCacheImporter(NewBrowserConfig(m.Name, defaultProfileName, m.CacheDir, EngineIEFindCache), LevelOS, m.opts...),
	}
}

func (m *IEBrowserManager) CookieImporter(config BrowserConfig) Importer {
	if config.EngineID == EngineIEFindCache {
		return NewIEFindCacheImporter(config, LevelOS, m.opts...)
	}
	return NewIEImporter(config, LevelOS, nil, m.opts...)
}
