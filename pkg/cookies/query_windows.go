//go:build windows

package cookies

import (
	"errors"
	"fmt"
	"net/url"
	"unsafe"

	"golang.org/x/sys/windows"
)

// internetCookieHTTPOnly asks WinINet to include HttpOnly cookies.
const internetCookieHTTPOnly = 0x00002000

var (
	modWininet               = windows.NewLazySystemDLL("wininet.dll")
	procInternetGetCookieExW = modWininet.NewProc("InternetGetCookieExW")
)

type wininetQuerier struct{}

func defaultCookieQuerier() CookieQuerier {
	return wininetQuerier{}
}

// QueryCookies calls InternetGetCookieExW twice: once for the buffer size,
// once for the data.
func (wininetQuerier) QueryCookies(u *url.URL) (string, error) {
	if err := procInternetGetCookieExW.Find(); err != nil {
		return "", fmt.Errorf("load InternetGetCookieExW: %w", err)
	}
	urlPtr, err := windows.UTF16PtrFromString(u.String())
	if err != nil {
		return "", err
	}

	var size uint32
	r, _, callErr := procInternetGetCookieExW.Call(
		uintptr(unsafe.Pointer(urlPtr)),
		0,
		0,
		uintptr(unsafe.Pointer(&size)),
		internetCookieHTTPOnly,
		0,
	)
	if r == 0 {
		if errors.Is(callErr, windows.ERROR_NO_MORE_ITEMS) {
			return "", nil
		}
		return "", fmt.Errorf("InternetGetCookieExW size query: %w", callErr)
	}
	if size == 0 {
		return "", nil
	}

	buf := make([]uint16, size+1)
	r, _, callErr = procInternetGetCookieExW.Call(
		uintptr(unsafe.Pointer(urlPtr)),
		0,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&size)),
		internetCookieHTTPOnly,
		0,
	)
	if r == 0 {
		if errors.Is(callErr, windows.ERROR_NO_MORE_ITEMS) {
			return "", nil
		}
		return "", fmt.Errorf("InternetGetCookieExW: %w", callErr)
	}
	return windows.UTF16ToString(buf), nil
}
