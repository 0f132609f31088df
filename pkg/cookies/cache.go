package cookies

import (
	"bufio"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const (
	cacheCookieExt = ".txt"
	// cacheRecordSeparator ends every record once line endings are normalized.
	cacheRecordSeparator = "*\r\n"
	cacheLineEnding      = "\r\n"
	// cacheRecordMinLines is the shortest valid record: name, value,
	// host/path, flags, expiry low, expiry high, creation low, creation high.
	cacheRecordMinLines = 8
	// cacheOriginFirstLine is the first line index that may hold the origin.
	cacheOriginFirstLine = 2
	cacheMaxLineSize     = 1 << 20
)

// WinINet cookie flags stored on line 3 of a cache record.
const (
	cacheFlagSecure   = 0x1
	cacheFlagHTTPOnly = 0x2000
)

// IEFindCacheImporter recovers cookies from the text records Internet
// Explorer keeps in its cookie cache directory, without going through the
// OS API.
type IEFindCacheImporter struct {
	importerBase
}

// NewIEFindCacheImporter creates an importer scanning the cache directory
// named by config.CookiePath.
func NewIEFindCacheImporter(config BrowserConfig, primaryLevel int, opts ...Option) *IEFindCacheImporter {
	return &IEFindCacheImporter{
		importerBase: newImporterBase(config, PathDirectory, primaryLevel, opts),
	}
}

// IsAvailable reports whether CookiePath is set and names a directory.
func (i *IEFindCacheImporter) IsAvailable() bool {
	if i.config.CookiePath == "" {
		return false
	}
	ok, err := afero.DirExists(i.opts.fs, i.config.CookiePath)
	return err == nil && ok
}

func (i *IEFindCacheImporter) GetCookies(target *url.URL, jar *CookieJar) ImportResult {
	return i.getCookies(i.IsAvailable(), i.extract, target, jar)
}

func (i *IEFindCacheImporter) Generate(config BrowserConfig) Importer {
	return NewIEFindCacheImporter(config, i.level, i.opts.asList()...)
}

// extract reads every cache file relevant to target. Records are pooled and
// sorted by expiry before insertion so the latest expiry wins when the jar
// replaces duplicates.
func (i *IEFindCacheImporter) extract(target *url.URL, staging *CookieJar) error {
	dir := i.config.CookiePath
	entries, err := afero.ReadDir(i.opts.fs, dir)
	if err != nil {
		return accessError("cannot list cookie cache directory "+dir, err)
	}

	var pooled []Cookie
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), cacheCookieExt) {
			continue
		}
		cachePath := filepath.Join(dir, entry.Name())
		text, err := readIfSendable(i.opts.fs, cachePath, target)
		if err != nil {
			return err
		}
		if text == "" {
			continue
		}
		parsed, err := ParseCacheCookies(text)
		if err != nil {
			i.opts.log.Warning("%s: malformed cache cookie file %s", i.config, cachePath)
			return err
		}
		pooled = append(pooled, parsed...)
	}

	slices.SortStableFunc(pooled, func(a, b Cookie) int {
		return a.Expiry.Compare(b.Expiry)
	})
	for _, c := range pooled {
		staging.Add(c)
	}
	return nil
}

// readIfSendable reads a Shift_JIS cache file and returns its text with CRLF
// line endings, but only when the file's origin host is a suffix of the
// target host. Reading stops at the origin line for other files, which
// return "" with no error. Any read failure is an AccessError.
func readIfSendable(fs afero.Fs, cachePath string, target *url.URL) (string, error) {
	f, err := fs.Open(cachePath)
	if err != nil {
		return "", accessError("cannot open cache cookie file "+cachePath, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(transform.NewReader(f, japanese.ShiftJIS.NewDecoder()))
	scanner.Buffer(make([]byte, 0, 4096), cacheMaxLineSize)

	var text strings.Builder
	var origin *url.URL
	for idx := 0; scanner.Scan(); idx++ {
		line := scanner.Text()
		text.WriteString(line)
		text.WriteString(cacheLineEnding)
		if idx < cacheOriginFirstLine {
			continue
		}
		if u, ok := parseHostLine(line); ok {
			origin = u
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", accessError("cannot read cache cookie file "+cachePath, err)
	}

	if origin == nil {
		return "", nil
	}
	targetHost := strings.ToLower(target.Hostname())
	if !strings.HasSuffix(targetHost, strings.ToLower(origin.Hostname())) {
		return "", nil
	}

	for scanner.Scan() {
		text.WriteString(scanner.Text())
		text.WriteString(cacheLineEnding)
	}
	if err := scanner.Err(); err != nil {
		return "", accessError("cannot read cache cookie file "+cachePath, err)
	}
	return text.String(), nil
}

// parseHostLine interprets a "host[/path]" line as an absolute http URL.
func parseHostLine(line string) (*url.URL, bool) {
	if line == "" {
		return nil, false
	}
	u, err := url.Parse("http://" + line)
	if err != nil || u.Hostname() == "" {
		return nil, false
	}
	return u, true
}

// ParseCacheCookies parses the CRLF text of one or more cache cookie records
// separated by "*" lines. Any record with fewer than 8 non-empty lines, an
// unparsable host line or a non-numeric expiry field fails the whole text
// with ConvertError.
func ParseCacheCookies(text string) ([]Cookie, error) {
	var cookies []Cookie
	for idx, block := range splitNonEmpty(text, cacheRecordSeparator) {
		lines := splitNonEmpty(block, cacheLineEnding)
		if len(lines) == 0 {
			continue
		}
		if len(lines) < cacheRecordMinLines {
			return nil, convertError(fmt.Sprintf("cache cookie record %d has %d lines, want at least %d",
				idx, len(lines), cacheRecordMinLines), nil)
		}
		c, err := parseCacheRecord(lines)
		if err != nil {
			return nil, convertError(fmt.Sprintf("cache cookie record %d", idx), err)
		}
		cookies = append(cookies, c)
	}
	return cookies, nil
}

func parseCacheRecord(lines []string) (Cookie, error) {
	u, err := url.Parse("http://" + lines[2])
	if err != nil {
		return Cookie{}, fmt.Errorf("invalid host line: %w", err)
	}
	if u.Hostname() == "" {
		return Cookie{}, fmt.Errorf("host line has no host")
	}
	// FILETIME halves are unsigned 32-bit words.
	high, err := strconv.ParseUint(strings.TrimSpace(lines[5]), 10, 32)
	if err != nil {
		return Cookie{}, fmt.Errorf("invalid expiry high part: %w", err)
	}
	low, err := strconv.ParseUint(strings.TrimSpace(lines[4]), 10, 32)
	if err != nil {
		return Cookie{}, fmt.Errorf("invalid expiry low part: %w", err)
	}
	ticks := int64(high)<<32 | int64(low)
	if ticks < 0 {
		return Cookie{}, fmt.Errorf("expiry out of range")
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	c := Cookie{
		Name:   lines[0],
		Value:  lines[1],
		Domain: normalizeCacheDomain(u.Hostname()),
		Path:   path,
		Expiry: fileTimeToTime(ticks),
	}
	if flags, err := strconv.ParseUint(strings.TrimSpace(lines[3]), 10, 32); err == nil {
		c.Secure = flags&cacheFlagSecure != 0
		c.HttpOnly = flags&cacheFlagHTTPOnly != 0
	}
	return c, nil
}

// normalizeCacheDomain strips a leading "www." and gives the domain exactly
// one leading dot so the cookie matches subdomains.
func normalizeCacheDomain(host string) string {
	d := strings.ToLower(host)
	d = strings.TrimPrefix(d, "www.")
	return "." + strings.TrimLeft(d, ".")
}

func splitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
