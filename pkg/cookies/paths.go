package cookies

import "path/filepath"

// browserSpec describes one entry of the built-in browser table.
type browserSpec struct {
	// Name is the human-readable browser name (e.g. "Firefox").
	Name string
	// EngineID selects the manager: EngineBlink scans DataFolder for profile
	// folders, EngineGecko reads DataFolder's profiles.ini.
	EngineID string
	// DataFolder is the browser's user data root.
	DataFolder string
	// PrimaryLevel ranks the browser for display.
	PrimaryLevel int
	// CookieFile overrides the engine's default cookie file name.
	CookieFile string
}

// modernBlinkCookieFile is where Chromium 96+ keeps the cookie database
// inside a profile folder.
var modernBlinkCookieFile = filepath.Join("Network", "Cookies")

// managersFromSpecs turns table entries into browser managers.
func managersFromSpecs(specs []browserSpec, opts []Option) []BrowserManager {
	managers := make([]BrowserManager, 0, len(specs))
	for _, spec := range specs {
		switch spec.EngineID {
		case EngineGecko:
			m := NewGeckoBrowserManager(spec.Name, spec.DataFolder, spec.PrimaryLevel, opts...)
			if spec.CookieFile != "" {
				m.CookieFileName = spec.CookieFile
			}
			managers = append(managers, m)
		case EngineBlink:
			m := NewBlinkBrowserManager(spec.Name, spec.DataFolder, spec.PrimaryLevel, opts...)
			if spec.CookieFile != "" {
				m.CookieFileName = spec.CookieFile
			}
			managers = append(managers, m)
		}
	}
	return managers
}
