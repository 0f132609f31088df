package cookies

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

type cookieKey struct {
	name   string
	domain string
	path   string
}

// CookieJar is the collection importers write into. It keeps insertion
// order and de-duplicates by (name, domain, path): adding a cookie whose
// identity is already present replaces the stored value in place. The zero
// value is an empty jar ready to use.
//
// A CookieJar is not safe for concurrent writers. Callers fanning several
// importers into one jar must serialize the GetCookies calls or merge
// per-importer jars themselves.
type CookieJar struct {
	index   map[cookieKey]int
	cookies []Cookie
}

// NewCookieJar creates an empty jar.
func NewCookieJar() *CookieJar {
	return &CookieJar{index: make(map[cookieKey]int)}
}

func keyOf(c Cookie) cookieKey {
	return cookieKey{name: c.Name, domain: strings.ToLower(c.Domain), path: c.Path}
}

// Add inserts c, replacing any stored cookie with the same identity.
func (j *CookieJar) Add(c Cookie) {
	if j.index == nil {
		j.index = make(map[cookieKey]int)
	}
	k := keyOf(c)
	if i, ok := j.index[k]; ok {
		j.cookies[i] = c
		return
	}
	j.index[k] = len(j.cookies)
	j.cookies = append(j.cookies, c)
}

// Merge adds every cookie of other, in other's order.
func (j *CookieJar) Merge(other *CookieJar) {
	if other == nil {
		return
	}
	for _, c := range other.cookies {
		j.Add(c)
	}
}

// Len returns the number of distinct cookies held.
func (j *CookieJar) Len() int {
	return len(j.cookies)
}

// Cookies returns a copy of the stored cookies in insertion order.
func (j *CookieJar) Cookies() []Cookie {
	out := make([]Cookie, len(j.cookies))
	copy(out, j.cookies)
	return out
}

// Sendable returns the cookies a request to u would carry: the domain must
// match the host, the path must prefix the request path, and Secure cookies
// require https.
func (j *CookieJar) Sendable(u *url.URL) []Cookie {
	if u == nil {
		return nil
	}
	host := u.Hostname()
	reqPath := u.Path
	if reqPath == "" {
		reqPath = "/"
	}
	var out []Cookie
	for _, c := range j.cookies {
		if !domainMatches(c.Domain, host) {
			continue
		}
		if c.Path != "" && !strings.HasPrefix(reqPath, c.Path) {
			continue
		}
		if c.Secure && u.Scheme != "https" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// HeaderValue builds the Cookie header a request to u would carry.
// Format: "name1=val1; name2=val2".
func (j *CookieJar) HeaderValue(u *url.URL) string {
	sendable := j.Sendable(u)
	if len(sendable) == 0 {
		return ""
	}
	parts := make([]string, len(sendable))
	for i, c := range sendable {
		parts[i] = c.Name + "=" + c.Value
	}
	return strings.Join(parts, "; ")
}

// HTTPCookies converts the stored cookies to net/http cookies.
func (j *CookieJar) HTTPCookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		out = append(out, toHTTPCookie(c))
	}
	return out
}

func toHTTPCookie(c Cookie) *http.Cookie {
	hc := &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Expires:  c.Expiry,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
	// Host-only cookies carry no Domain attribute.
	if strings.HasPrefix(c.Domain, ".") {
		hc.Domain = c.Domain
	}
	return hc
}

// HTTPJar builds a net/http cookie jar holding every stored cookie, using the
// public suffix list to reject cookies scoped to a registry domain.
func (j *CookieJar) HTTPJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	for _, c := range j.cookies {
		host := strings.TrimLeft(c.Domain, ".")
		if host == "" {
			continue
		}
		scheme := "http"
		if c.Secure {
			scheme = "https"
		}
		p := c.Path
		if p == "" {
			p = "/"
		}
		u := &url.URL{Scheme: scheme, Host: host, Path: p}
		jar.SetCookies(u, []*http.Cookie{toHTTPCookie(c)})
	}
	return jar, nil
}
