package cookies

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// StoreReader decodes an SQLite cookie database into the cookies sendable
// to host. dbPath names a private copy the reader may open freely.
type StoreReader interface {
	ReadCookies(dbPath, host string, now time.Time) ([]Cookie, error)
}

// StoreReaderFunc adapts a function to StoreReader.
type StoreReaderFunc func(dbPath, host string, now time.Time) ([]Cookie, error)

func (f StoreReaderFunc) ReadCookies(dbPath, host string, now time.Time) ([]Cookie, error) {
	return f(dbPath, host, now)
}

// candidateDomains lists the cookie domains that may be sent to host:
// host itself and every parent domain, each with and without a leading dot.
func candidateDomains(host string) []string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	var out []string
	for d := host; d != ""; {
		out = append(out, d, "."+d)
		i := strings.IndexByte(d, '.')
		if i < 0 {
			break
		}
		d = d[i+1:]
	}
	return out
}

func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

func openImmutable(dbPath string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", dbPath))
}

// ParseChrome reads the Blink "cookies" table. Encrypted cookies (empty
// plaintext value) are skipped, as are expired ones; session cookies
// (expires_utc = 0) are kept.
func ParseChrome(dbPath, host string, now time.Time) ([]Cookie, error) {
	db, err := openImmutable(dbPath)
	if err != nil {
		return nil, accessError("cannot open Blink cookie database", err)
	}
	defer db.Close()

	domains := candidateDomains(host)
	if len(domains) == 0 {
		return nil, nil
	}
	nowChrome := (now.Unix() + windowsEpochOffsetSeconds) * 1_000_000
	args := make([]any, 0, len(domains)+1)
	for _, d := range domains {
		args = append(args, d)
	}
	args = append(args, nowChrome)

	rows, err := db.Query(`
        SELECT name, value, host_key, path, expires_utc, is_secure, is_httponly
        FROM cookies
        WHERE host_key IN (`+placeholders(len(domains))+`)
          AND value != ''
          AND (expires_utc = 0 OR expires_utc > ?)
        ORDER BY path DESC, name ASC
    `, args...)
	if err != nil {
		return nil, convertError("cannot query Blink cookies", err)
	}
	defer rows.Close()

	var cookies []Cookie
	for rows.Next() {
		var (
			name, value, hostKey, path string
			expiresUTC                 int64
			isSecure, isHttpOnly       int
		)
		if err := rows.Scan(&name, &value, &hostKey, &path, &expiresUTC, &isSecure, &isHttpOnly); err != nil {
			return nil, convertError("cannot scan Blink cookie row", err)
		}
		if name == "" {
			continue
		}
		cookies = append(cookies, Cookie{
			Name:     name,
			Value:    value,
			Domain:   hostKey,
			Path:     path,
			Expiry:   chromeTimeToTime(expiresUTC),
			Secure:   isSecure != 0,
			HttpOnly: isHttpOnly != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, convertError("cannot iterate Blink cookie rows", err)
	}
	return cookies, nil
}

// ParseFirefox reads the Gecko "moz_cookies" table. Expired cookies are
// skipped.
func ParseFirefox(dbPath, host string, now time.Time) ([]Cookie, error) {
	db, err := openImmutable(dbPath)
	if err != nil {
		return nil, accessError("cannot open Gecko cookie database", err)
	}
	defer db.Close()

	domains := candidateDomains(host)
	if len(domains) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(domains)+1)
	for _, d := range domains {
		args = append(args, d)
	}
	args = append(args, now.Unix())

	rows, err := db.Query(`
        SELECT name, value, host, path, expiry, isSecure, isHttpOnly
        FROM moz_cookies
        WHERE host IN (`+placeholders(len(domains))+`)
          AND expiry > ?
        ORDER BY path DESC, name ASC
    `, args...)
	if err != nil {
		return nil, convertError("cannot query Gecko cookies", err)
	}
	defer rows.Close()

	var cookies []Cookie
	for rows.Next() {
		var (
			name, value, cookieHost, path string
			expiry                        int64
			isSecure, isHttpOnly          int
		)
		if err := rows.Scan(&name, &value, &cookieHost, &path, &expiry, &isSecure, &isHttpOnly); err != nil {
			return nil, convertError("cannot scan Gecko cookie row", err)
		}
		if name == "" || value == "" {
			continue
		}
		cookies = append(cookies, Cookie{
			Name:     name,
			Value:    value,
			Domain:   cookieHost,
			Path:     path,
			Expiry:   time.Unix(expiry, 0).UTC(),
			Secure:   isSecure != 0,
			HttpOnly: isHttpOnly != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, convertError("cannot iterate Gecko cookie rows", err)
	}
	return cookies, nil
}
