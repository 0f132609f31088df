package cookies

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/warpdl/cookiegetter/pkg/logger"
)

const (
	netscapeHeader    = "# Netscape HTTP Cookie File"
	netscapeAltHeader = "# HTTP Cookie File"
	httpOnlyPrefix    = "#HttpOnly_"
)

// NetscapeImporter reads a Netscape-format cookies.txt file, as written by
// curl, wget, yt-dlp and browser export extensions.
type NetscapeImporter struct {
	importerBase
}

// NewNetscapeImporter creates an importer for the cookies.txt at
// config.CookiePath.
func NewNetscapeImporter(config BrowserConfig, primaryLevel int, opts ...Option) *NetscapeImporter {
	return &NetscapeImporter{importerBase: newImporterBase(config, PathFile, primaryLevel, opts)}
}

func (n *NetscapeImporter) IsAvailable() bool {
	return isRegularFile(n.opts.fs, n.config.CookiePath)
}

func (n *NetscapeImporter) GetCookies(target *url.URL, jar *CookieJar) ImportResult {
	return n.getCookies(n.IsAvailable(), n.extract, target, jar)
}

func (n *NetscapeImporter) Generate(config BrowserConfig) Importer {
	return NewNetscapeImporter(config, n.level, n.opts.asList()...)
}

func (n *NetscapeImporter) extract(target *url.URL, staging *CookieJar) error {
	f, err := n.opts.fs.Open(n.config.CookiePath)
	if err != nil {
		return accessError("cannot open Netscape cookie file", err)
	}
	defer f.Close()

	parsed, err := ParseNetscape(f, target.Hostname(), n.opts.now(), n.opts.log)
	if err != nil {
		return err
	}
	for _, c := range parsed {
		staging.Add(c)
	}
	return nil
}

// ParseNetscape reads Netscape-format cookies sendable to host.
// Lines starting with # are skipped, except #HttpOnly_ which sets the
// HttpOnly flag. Malformed lines, including ones with an empty name or
// value, are skipped with a warning. Expired cookies are dropped; an expiry
// of 0 marks a session cookie.
func ParseNetscape(r io.Reader, host string, now time.Time, log logger.Logger) ([]Cookie, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}
	var cookies []Cookie

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			httpOnly = true
			line = line[len(httpOnlyPrefix):]
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			log.Warning("skipping malformed Netscape cookie line %d", lineNo)
			continue
		}
		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			log.Warning("skipping Netscape cookie line %d with invalid expiry", lineNo)
			continue
		}
		if fields[5] == "" || fields[6] == "" {
			log.Warning("skipping Netscape cookie line %d with an empty name or value", lineNo)
			continue
		}
		c := Cookie{
			Name:     fields[5],
			Value:    fields[6],
			Domain:   fields[0],
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			HttpOnly: httpOnly,
		}
		if !c.IsSendableTo(host) {
			continue
		}
		if expiry > 0 {
			c.Expiry = time.Unix(expiry, 0).UTC()
			if c.Expiry.Before(now) {
				continue
			}
		}
		cookies = append(cookies, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, accessError("cannot read Netscape cookie file", err)
	}
	return cookies, nil
}

// WriteNetscape renders cookies in Netscape cookies.txt format.
func WriteNetscape(w io.Writer, cookies []Cookie) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, netscapeHeader)
	for _, c := range cookies {
		domain := c.Domain
		if c.HttpOnly {
			domain = httpOnlyPrefix + domain
		}
		var expiry int64
		if !c.Expiry.IsZero() {
			expiry = c.Expiry.Unix()
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			domain,
			netscapeBool(strings.HasPrefix(c.Domain, ".")),
			path,
			netscapeBool(c.Secure),
			expiry,
			c.Name,
			c.Value,
		)
	}
	return bw.Flush()
}

func netscapeBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
