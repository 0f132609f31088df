package cookies

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	defaultGeckoCookieFile = "cookies.sqlite"
	defaultGeckoIniFile    = "profiles.ini"
	defaultProfileName     = "Default"
)

// UserProfile is one [Profile*] section of a Gecko profiles.ini manifest.
type UserProfile struct {
	Name       string
	IsRelative bool
	// Path is the profile directory, already resolved against the data
	// folder when IsRelative is set.
	Path      string
	IsDefault bool
}

// ReadProfiles parses the profiles.ini manifest under dataFolder.
//
// Only [Profile*] sections produce profiles; any other section header ends
// the current profile. Within a profile the keys Name, IsRelative, Path and
// Default are read; lines that are not exactly one "key=value" pair are
// skipped. An [Install*] section's Default= entry also marks the profile
// with that path as default.
//
// A missing manifest yields no profiles and no error.
func ReadProfiles(fs afero.Fs, dataFolder, iniFileName string) ([]UserProfile, error) {
	if dataFolder == "" {
		return nil, nil
	}
	iniPath := filepath.Join(dataFolder, iniFileName)
	if ok, err := afero.Exists(fs, iniPath); err != nil || !ok {
		return nil, nil
	}
	f, err := fs.Open(iniPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open profile manifest %s: %w", iniPath, err)
	}
	defer f.Close()

	var (
		profiles        []UserProfile
		installDefaults []string
		inInstall       bool
	)
	current := -1
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			section := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			inInstall = strings.HasPrefix(section, "Install")
			current = -1
			if strings.HasPrefix(section, "Profile") {
				profiles = append(profiles, UserProfile{})
				current = len(profiles) - 1
			}
			continue
		}
		key, value, ok := parseKeyValue(line)
		if !ok {
			continue
		}
		if inInstall {
			if key == "Default" {
				installDefaults = append(installDefaults, filepath.FromSlash(value))
			}
			continue
		}
		if current < 0 {
			continue
		}
		p := &profiles[current]
		switch key {
		case "Name":
			p.Name = value
		case "IsRelative":
			p.IsRelative = value == "1"
		case "Path":
			p.Path = filepath.FromSlash(value)
		case "Default":
			p.IsDefault = value == "1"
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read profile manifest %s: %w", iniPath, err)
	}

	for i := range profiles {
		p := &profiles[i]
		for _, d := range installDefaults {
			if p.Path != "" && d == p.Path {
				p.IsDefault = true
			}
		}
		if p.IsRelative && p.Path != "" {
			p.Path = filepath.Join(dataFolder, p.Path)
		}
	}
	return profiles, nil
}

// parseKeyValue splits a "key=value" line. Lines with no '=' or more than
// one are rejected.
func parseKeyValue(line string) (key, value string, ok bool) {
	if strings.Count(line, "=") != 1 {
		return "", "", false
	}
	key, value, _ = strings.Cut(line, "=")
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// GeckoBrowserManager discovers the profiles of a Firefox-family browser
// from its profiles.ini manifest.
type GeckoBrowserManager struct {
	Name         string
	DataFolder   string
	PrimaryLevel int
	// CookieFileName is the database name inside a profile directory.
	CookieFileName string
	// IniFileName is the manifest name inside DataFolder.
	IniFileName string

	opts []Option
}

// NewGeckoBrowserManager creates a manager for the browser whose profiles
// live under dataFolder.
func NewGeckoBrowserManager(name, dataFolder string, primaryLevel int, opts ...Option) *GeckoBrowserManager {
	return &GeckoBrowserManager{
		Name:           name,
		DataFolder:     dataFolder,
		PrimaryLevel:   primaryLevel,
		CookieFileName: defaultGeckoCookieFile,
		IniFileName:    defaultGeckoIniFile,
		opts:           opts,
	}
}

func (m *GeckoBrowserManager) EngineIDs() []string {
	return []string{EngineGecko}
}

// CookieImporters returns one importer per manifest profile. When the
// manifest is missing or lists no profile, a single "Default" importer with
// no store path stands in so the browser still appears, unavailable.
func (m *GeckoBrowserManager) CookieImporters() []Importer {
	o := newOptions(m.opts)
	profiles, err := ReadProfiles(o.fs, m.DataFolder, m.IniFileName)
	if err != nil {
		o.log.Warning("%s: %v", m.Name, err)
	}

	importers := make([]Importer, 0, len(profiles))
	for _, prof := range profiles {
		cookiePath := ""
		if prof.Path != "" {
			cookiePath = filepath.Join(prof.Path, m.CookieFileName)
		}
		conf := NewBrowserConfig(m.Name, prof.Name, cookiePath, EngineGecko)
		importers = append(importers, NewGeckoImporter(conf, m.PrimaryLevel, nil, m.opts...))
	}
	if len(importers) == 0 {
		conf := NewBrowserConfig(m.Name, defaultProfileName, "", EngineGecko)
		importers = append(importers, NewGeckoImporter(conf, m.PrimaryLevel, nil, m.opts...))
	}
	return importers
}

func (m *GeckoBrowserManager) CookieImporter(config BrowserConfig) Importer {
	return NewGeckoImporter(config, m.PrimaryLevel, nil, m.opts...)
}
