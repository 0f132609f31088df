package cookies

import (
	"strings"
	"time"
)

// PathType tells whether a cookie store is a single file or a directory tree.
type PathType int

const (
	// PathFile means the store is one file (an SQLite database or cookies.txt).
	PathFile PathType = iota
	// PathDirectory means the store is a directory (cache records or an OS store).
	PathDirectory
)

func (p PathType) String() string {
	if p == PathDirectory {
		return "directory"
	}
	return "file"
}

// Presentation ranks returned by Importer.PrimaryLevel.
const (
	// LevelOS marks the browser shipped with the operating system.
	LevelOS = 0
	// LevelWellKnown marks a mainstream browser.
	LevelWellKnown = 1
	// LevelDerivative marks a browser embedding another engine.
	LevelDerivative = 2
)

// Cookie represents a single HTTP cookie imported from a browser cookie store.
// IMPORTANT: Value is SENSITIVE. It MUST NEVER be logged at any level or
// formatted into error messages. Only Name and Domain may appear in debug logs.
type Cookie struct {
	// Name is the cookie name. Never empty after a successful import.
	Name string
	// Value is the cookie value. SENSITIVE, never log.
	Value string
	// Domain is the cookie domain (a leading dot means subdomains match too).
	Domain string
	// Path is the cookie path scope.
	Path string
	// Expiry is the cookie expiration time. The zero value is a session cookie.
	Expiry time.Time
	// Secure indicates the cookie should only be sent over HTTPS.
	Secure bool
	// HttpOnly indicates the cookie is not accessible via JavaScript.
	HttpOnly bool
}

// IsSendableTo reports whether the cookie's domain matches host, either
// exactly or as a parent domain.
func (c Cookie) IsSendableTo(host string) bool {
	return domainMatches(c.Domain, host)
}

// domainMatches checks a cookie domain against a request host. Matches:
// exact, dot-prefixed exact, or any subdomain of the cookie domain.
func domainMatches(cookieDomain, host string) bool {
	if cookieDomain == "" || host == "" {
		return false
	}
	d := strings.ToLower(strings.TrimLeft(cookieDomain, "."))
	if d == "" {
		return false
	}
	h := strings.ToLower(host)
	return d == h || strings.HasSuffix(h, "."+d)
}
