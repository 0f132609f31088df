//go:build unix

package cookies

import (
	"os"
	"path/filepath"
	"runtime"
)

// getBrowserSpecsForHome returns the browser table rooted at homeDir.
// This is the testable variant; DefaultManagers calls it with the real home.
func getBrowserSpecsForHome(homeDir string) []browserSpec {
	if runtime.GOOS == "darwin" {
		support := filepath.Join(homeDir, "Library", "Application Support")
		return []browserSpec{
			{Name: "Firefox", EngineID: EngineGecko, DataFolder: filepath.Join(support, "Firefox"), PrimaryLevel: LevelWellKnown},
			{Name: "LibreWolf", EngineID: EngineGecko, DataFolder: filepath.Join(support, "librewolf"), PrimaryLevel: LevelDerivative},
			{Name: "Waterfox", EngineID: EngineGecko, DataFolder: filepath.Join(support, "Waterfox"), PrimaryLevel: LevelDerivative},
			{Name: "Google Chrome", EngineID: EngineBlink, DataFolder: filepath.Join(support, "Google", "Chrome"), PrimaryLevel: LevelWellKnown, CookieFile: modernBlinkCookieFile},
			{Name: "Chromium", EngineID: EngineBlink, DataFolder: filepath.Join(support, "Chromium"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
			{Name: "Microsoft Edge", EngineID: EngineBlink, DataFolder: filepath.Join(support, "Microsoft Edge"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
			{Name: "Brave", EngineID: EngineBlink, DataFolder: filepath.Join(support, "BraveSoftware", "Brave-Browser"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
			{Name: "Vivaldi", EngineID: EngineBlink, DataFolder: filepath.Join(support, "Vivaldi"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
		}
	}

	config := filepath.Join(homeDir, ".config")
	return []browserSpec{
		{Name: "Firefox", EngineID: EngineGecko, DataFolder: filepath.Join(homeDir, ".mozilla", "firefox"), PrimaryLevel: LevelWellKnown},
		{Name: "Firefox (Snap)", EngineID: EngineGecko, DataFolder: filepath.Join(homeDir, "snap", "firefox", "common", ".mozilla", "firefox"), PrimaryLevel: LevelWellKnown},
		{Name: "LibreWolf", EngineID: EngineGecko, DataFolder: filepath.Join(homeDir, ".librewolf"), PrimaryLevel: LevelDerivative},
		{Name: "Waterfox", EngineID: EngineGecko, DataFolder: filepath.Join(homeDir, ".waterfox"), PrimaryLevel: LevelDerivative},
		{Name: "Google Chrome", EngineID: EngineBlink, DataFolder: filepath.Join(config, "google-chrome"), PrimaryLevel: LevelWellKnown, CookieFile: modernBlinkCookieFile},
		{Name: "Chromium", EngineID: EngineBlink, DataFolder: filepath.Join(config, "chromium"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
		{Name: "Microsoft Edge", EngineID: EngineBlink, DataFolder: filepath.Join(config, "microsoft-edge"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
		{Name: "Brave", EngineID: EngineBlink, DataFolder: filepath.Join(config, "BraveSoftware", "Brave-Browser"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
		{Name: "Vivaldi", EngineID: EngineBlink, DataFolder: filepath.Join(config, "vivaldi"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
	}
}

// DefaultManagers returns the managers for every browser known on this OS,
// rooted at the current user's home directory.
func DefaultManagers(opts ...Option) []BrowserManager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		newOptions(opts).log.Warning("cannot resolve home directory: %v", err)
		return nil
	}
	return managersFromSpecs(getBrowserSpecsForHome(homeDir), opts)
}

// defaultImporter returns nil: there is no OS browser store off Windows.
func defaultImporter(...Option) Importer {
	return nil
}
