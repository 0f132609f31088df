//go:build !windows

package cookies

import "net/url"

type unsupportedQuerier struct{}

func defaultCookieQuerier() CookieQuerier {
	return unsupportedQuerier{}
}

func (unsupportedQuerier) QueryCookies(*url.URL) (string, error) {
	return "", ErrQueryUnsupported
}
