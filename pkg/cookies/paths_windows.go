//go:build windows

package cookies

import (
	"os"
	"path/filepath"
)

const ieName = "Internet Explorer"

// getBrowserSpecsForEnv returns the browser table using the given environment
// variable values. This is the testable variant; DefaultManagers calls it
// with real values from os.Getenv.
func getBrowserSpecsForEnv(localAppData, appData string) []browserSpec {
	return []browserSpec{
		// Gecko browsers keep profiles under APPDATA (Roaming).
		{Name: "Firefox", EngineID: EngineGecko, DataFolder: filepath.Join(appData, "Mozilla", "Firefox"), PrimaryLevel: LevelWellKnown},
		{Name: "LibreWolf", EngineID: EngineGecko, DataFolder: filepath.Join(appData, "LibreWolf"), PrimaryLevel: LevelDerivative},
		{Name: "Waterfox", EngineID: EngineGecko, DataFolder: filepath.Join(appData, "Waterfox"), PrimaryLevel: LevelDerivative},
		// Blink browsers keep user data under LOCALAPPDATA.
		{Name: "Google Chrome", EngineID: EngineBlink, DataFolder: filepath.Join(localAppData, "Google", "Chrome", "User Data"), PrimaryLevel: LevelWellKnown, CookieFile: modernBlinkCookieFile},
		{Name: "Chromium", EngineID: EngineBlink, DataFolder: filepath.Join(localAppData, "Chromium", "User Data"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
		{Name: "Microsoft Edge", EngineID: EngineBlink, DataFolder: filepath.Join(localAppData, "Microsoft", "Edge", "User Data"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
		{Name: "Brave", EngineID: EngineBlink, DataFolder: filepath.Join(localAppData, "BraveSoftware", "Brave-Browser", "User Data"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
		{Name: "Vivaldi", EngineID: EngineBlink, DataFolder: filepath.Join(localAppData, "Vivaldi", "User Data"), PrimaryLevel: LevelDerivative, CookieFile: modernBlinkCookieFile},
	}
}

// getSingleStoresForEnv returns the browsers that keep one store at a fixed
// location.
func getSingleStoresForEnv(appData string, opts []Option) []BrowserManager {
	return []BrowserManager{
		NewSingleStoreManager("Maxthon webkit", EngineBlink, LevelDerivative, []string{
			filepath.Join(appData, "Maxthon3", "Users", "guest", "Cookie", "Cookie.dat"),
		}, opts...),
		NewSingleStoreManager("Lunascape Gecko", EngineGecko, LevelDerivative, []string{
			filepath.Join(appData, "Lunascape", "Lunascape5", "ApplicationData", "gecko", "cookies.sqlite"),
			filepath.Join(appData, "Lunascape", "Lunascape6", "plugins", "*", "data", "cookies.sqlite"),
		}, opts...),
	}
}

// ieCacheDirForEnv returns the IE cookie cache folder: INetCookies on
// Windows 8 and later, Cookies before.
func ieCacheDirForEnv(localAppData, appData string) string {
	modern := filepath.Join(localAppData, "Microsoft", "Windows", "INetCookies")
	if info, err := os.Stat(modern); err == nil && info.IsDir() {
		return modern
	}
	return filepath.Join(appData, "Microsoft", "Windows", "Cookies")
}

// DefaultManagers returns the managers for every browser known on Windows.
func DefaultManagers(opts ...Option) []BrowserManager {
	localAppData := os.Getenv("LOCALAPPDATA")
	appData := os.Getenv("APPDATA")

	managers := []BrowserManager{
		NewIEBrowserManager(ieName, ieCacheDirForEnv(localAppData, appData), opts...),
	}
	managers = append(managers, managersFromSpecs(getBrowserSpecsForEnv(localAppData, appData), opts)...)
	return append(managers, getSingleStoresForEnv(appData, opts)...)
}

// defaultImporter returns the OS API importer, which is always available.
func defaultImporter(opts ...Option) Importer {
	conf := NewBrowserConfig(ieName, defaultProfileName, "", EngineIE)
	return NewIEImporter(conf, LevelOS, nil, opts...)
}
