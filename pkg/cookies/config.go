package cookies

import "fmt"

// Engine identifiers. Each identifies one cookie storage mechanism shared by a
// family of browsers.
const (
	EngineIE          = "IE"
	EngineIEFindCache = "IEFindCache"
	EngineBlink       = "Blink"
	EngineGecko       = "Gecko"
	EngineNetscape    = "Netscape"
)

// BrowserConfig describes one candidate cookie store. It is a value type:
// copies are independent and two configs are the same store exactly when
// they compare equal with ==.
type BrowserConfig struct {
	// Name is the browser display name (e.g. "Google Chrome").
	Name string `json:"name"`
	// ProfileName is the browser profile the store belongs to.
	ProfileName string `json:"profile_name"`
	// CookiePath is the store location. Empty means no store was detected.
	CookiePath string `json:"cookie_path,omitempty"`
	// EngineID is one of the Engine* identifiers.
	EngineID string `json:"engine_id"`
	// SecureOnly marks a store whose cookies may only travel over secure
	// transport. Importers flag every cookie they import from it Secure.
	SecureOnly bool `json:"secure_only,omitempty"`
	// IsCustomized marks a config whose CookiePath was supplied by the user
	// rather than discovered.
	IsCustomized bool `json:"is_customized,omitempty"`
}

// NewBrowserConfig creates a discovered (non-customized) config.
func NewBrowserConfig(name, profileName, cookiePath, engineID string) BrowserConfig {
	return BrowserConfig{
		Name:        name,
		ProfileName: profileName,
		CookiePath:  cookiePath,
		EngineID:    engineID,
	}
}

// SameBrowser reports whether c and other name the same browser profile,
// ignoring where the store lives.
func (c BrowserConfig) SameBrowser(other BrowserConfig) bool {
	return c.Name == other.Name &&
		c.ProfileName == other.ProfileName &&
		c.EngineID == other.EngineID
}

// WithCookiePath returns a customized copy of c pointing at path.
func (c BrowserConfig) WithCookiePath(path string) BrowserConfig {
	c.CookiePath = path
	c.IsCustomized = true
	return c
}

func (c BrowserConfig) String() string {
	if c.ProfileName == "" {
		return fmt.Sprintf("%s [%s]", c.Name, c.EngineID)
	}
	return fmt.Sprintf("%s (%s) [%s]", c.Name, c.ProfileName, c.EngineID)
}
