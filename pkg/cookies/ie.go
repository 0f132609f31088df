package cookies

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// osCookieLifetime is the expiry given to cookies read from the OS store,
// which does not report the original one.
const osCookieLifetime = 30 * 24 * time.Hour

// ErrQueryUnsupported is returned by the default CookieQuerier on platforms
// without an OS cookie store.
var ErrQueryUnsupported = errors.New("os cookie store query is not supported on this platform")

// CookieQuerier asks the operating system for the Cookie header it would send
// to a URL.
type CookieQuerier interface {
	QueryCookies(u *url.URL) (string, error)
}

// CookieQuerierFunc adapts a function to CookieQuerier.
type CookieQuerierFunc func(u *url.URL) (string, error)

func (f CookieQuerierFunc) QueryCookies(u *url.URL) (string, error) {
	return f(u)
}

// IEImporter reads cookies through the OS cookie store API (WinINet).
type IEImporter struct {
	importerBase
	querier CookieQuerier
}

// NewIEImporter creates an importer querying the OS cookie store. A nil
// querier selects the platform default.
func NewIEImporter(config BrowserConfig, primaryLevel int, querier CookieQuerier, opts ...Option) *IEImporter {
	if querier == nil {
		querier = defaultCookieQuerier()
	}
	return &IEImporter{
		importerBase: newImporterBase(config, PathDirectory, primaryLevel, opts),
		querier:      querier,
	}
}

// IsAvailable is always true: the OS API is assumed present. Platforms
// without it fail at query time with AccessError.
func (i *IEImporter) IsAvailable() bool {
	return true
}

func (i *IEImporter) GetCookies(target *url.URL, jar *CookieJar) ImportResult {
	return i.getCookies(i.IsAvailable(), i.extract, target, jar)
}

func (i *IEImporter) Generate(config BrowserConfig) Importer {
	return NewIEImporter(config, i.level, i.querier, i.opts.asList()...)
}

func (i *IEImporter) extract(target *url.URL, staging *CookieJar) error {
	header, err := i.querier.QueryCookies(target)
	if err != nil {
		return accessError("cannot query os cookie store", err)
	}
	parsed, err := ParseCookieHeader(header, target, i.opts.now())
	if err != nil {
		i.opts.log.Warning("%s: malformed cookie header from os store for %s", i.config, target.Host)
		return err
	}
	for _, c := range parsed {
		staging.Add(c)
	}
	return nil
}

// ParseCookieHeader converts a "name=value; name=value" header returned by
// the OS cookie store into cookies scoped to u. A single malformed segment
// (no '=', or an empty name or value) fails the whole header with
// ConvertError. An empty header yields no cookies.
//
// Domain is u's host without a leading dot. Path is the first segment of
// u's path, which for absolute URLs is always "/"; the store is queried per
// URL so the original path scope is unknown. Expiry is now plus 30 days.
func ParseCookieHeader(header string, u *url.URL, now time.Time) ([]Cookie, error) {
	if header == "" {
		return nil, nil
	}
	host := u.Hostname()
	path := firstSegment(u)
	expiry := now.Add(osCookieLifetime)

	segments := strings.Split(header, ";")
	cookies := make([]Cookie, 0, len(segments))
	for idx, seg := range segments {
		name, value, found := strings.Cut(seg, "=")
		if !found {
			return nil, convertError("cookie header segment "+strconv.Itoa(idx)+" has no '='", nil)
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			return nil, convertError("cookie header segment "+strconv.Itoa(idx)+" has an empty name or value", nil)
		}
		cookies = append(cookies, Cookie{
			Name:   name,
			Value:  value,
			Domain: host,
			Path:   path,
			Expiry: expiry,
		})
	}
	return cookies, nil
}

// firstSegment returns the leading segment of u's path, delimiter included.
func firstSegment(u *url.URL) string {
	p := u.EscapedPath()
	if p == "" || p[0] == '/' {
		return "/"
	}
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i+1]
	}
	return p
}
