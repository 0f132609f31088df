package cookies

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/warpdl/cookiegetter/pkg/logger"
)

func TestParseChrome_UnencryptedCookies(t *testing.T) {
	dir := t.TempDir()
	future := unixToChrome(fixedNow.Add(24 * time.Hour).Unix())
	dbPath := createChromeFixture(t, dir, []chromeRow{
		{Name: "sid", Value: "abc", HostKey: ".example.com", Path: "/", ExpiresUTC: future},
		{Name: "pref", Value: "dark", HostKey: "example.com", Path: "/", ExpiresUTC: 0},
	})

	got, err := ParseChrome(dbPath, "example.com", fixedNow)
	if err != nil {
		t.Fatalf("ParseChrome: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(got))
	}
	for _, c := range got {
		if c.Name == "pref" && !c.Expiry.IsZero() {
			t.Errorf("session cookie should have zero expiry, got %v", c.Expiry)
		}
	}
}

func TestParseChrome_SkipEncryptedOnly(t *testing.T) {
	dir := t.TempDir()
	dbPath := createChromeFixture(t, dir, []chromeRow{
		{Name: "plain", Value: "v", HostKey: "example.com", Path: "/"},
		{Name: "enc", Value: "", EncryptedValue: []byte("v10xxxx"), HostKey: "example.com", Path: "/"},
	})

	got, err := ParseChrome(dbPath, "example.com", fixedNow)
	if err != nil {
		t.Fatalf("ParseChrome: %v", err)
	}
	if names := cookieNames(got); !slices.Equal(names, []string{"plain"}) {
		t.Fatalf("got %v, want [plain]", names)
	}
}

func TestParseChrome_TimestampConversion(t *testing.T) {
	dir := t.TempDir()
	expires := fixedNow.Add(48 * time.Hour).Unix()
	dbPath := createChromeFixture(t, dir, []chromeRow{
		{Name: "a", Value: "1", HostKey: "example.com", Path: "/", ExpiresUTC: unixToChrome(expires)},
	})

	got, err := ParseChrome(dbPath, "example.com", fixedNow)
	if err != nil {
		t.Fatalf("ParseChrome: %v", err)
	}
	if len(got) != 1 || got[0].Expiry.Unix() != expires {
		t.Fatalf("expiry = %v, want unix %d", got, expires)
	}
}

func TestParseChrome_DomainFilteringAndExpiry(t *testing.T) {
	dir := t.TempDir()
	past := unixToChrome(fixedNow.Add(-time.Hour).Unix())
	dbPath := createChromeFixture(t, dir, []chromeRow{
		{Name: "parent", Value: "1", HostKey: ".example.com", Path: "/"},
		{Name: "exact", Value: "1", HostKey: "www.example.com", Path: "/"},
		{Name: "sibling", Value: "1", HostKey: "api.example.com", Path: "/"},
		{Name: "other", Value: "1", HostKey: "example.org", Path: "/"},
		{Name: "expired", Value: "1", HostKey: "example.com", Path: "/", ExpiresUTC: past},
	})

	got, err := ParseChrome(dbPath, "www.example.com", fixedNow)
	if err != nil {
		t.Fatalf("ParseChrome: %v", err)
	}
	names := cookieNames(got)
	slices.Sort(names)
	if !slices.Equal(names, []string{"exact", "parent"}) {
		t.Fatalf("got %v, want [exact parent]", names)
	}
}

func TestParseChrome_SecureAndHttpOnlyFlags(t *testing.T) {
	dir := t.TempDir()
	dbPath := createChromeFixture(t, dir, []chromeRow{
		{Name: "s", Value: "1", HostKey: "example.com", Path: "/", IsSecure: 1, IsHttpOnly: 1},
	})
	got, err := ParseChrome(dbPath, "example.com", fixedNow)
	if err != nil {
		t.Fatalf("ParseChrome: %v", err)
	}
	if len(got) != 1 || !got[0].Secure || !got[0].HttpOnly {
		t.Fatalf("flags not read: %+v", got)
	}
}

func TestParseFirefox_BasicParse(t *testing.T) {
	dir := t.TempDir()
	future := fixedNow.Add(time.Hour).Unix()
	dbPath := createFirefoxFixture(t, dir, []firefoxRow{
		{Name: "sid", Value: "abc", Host: ".example.com", Path: "/", Expiry: future, IsSecure: 1},
		{Name: "old", Value: "x", Host: ".example.com", Path: "/", Expiry: fixedNow.Add(-time.Hour).Unix()},
		{Name: "else", Value: "x", Host: "example.net", Path: "/", Expiry: future},
	})

	got, err := ParseFirefox(dbPath, "shop.example.com", fixedNow)
	if err != nil {
		t.Fatalf("ParseFirefox: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 cookie, got %v", cookieNames(got))
	}
	c := got[0]
	if c.Name != "sid" || c.Value != "abc" || c.Domain != ".example.com" || !c.Secure {
		t.Errorf("unexpected cookie %+v", c)
	}
	if c.Expiry.Unix() != future {
		t.Errorf("expiry = %v, want %d", c.Expiry, future)
	}
}

func TestCandidateDomains(t *testing.T) {
	got := candidateDomains("WWW.Example.com.")
	want := []string{"www.example.com", ".www.example.com", "example.com", ".example.com", "com", ".com"}
	if !slices.Equal(got, want) {
		t.Fatalf("candidateDomains = %v, want %v", got, want)
	}
	if got := candidateDomains(""); len(got) != 0 {
		t.Fatalf("empty host should yield nothing, got %v", got)
	}
}

func TestGeckoImporter_GetCookies(t *testing.T) {
	dir := t.TempDir()
	future := fixedNow.Add(time.Hour).Unix()
	dbPath := createFirefoxFixture(t, dir, []firefoxRow{
		{Name: "sid", Value: "abc", Host: ".example.com", Path: "/", Expiry: future},
	})
	imp := NewGeckoImporter(NewBrowserConfig("Firefox", "default", dbPath, EngineGecko), LevelWellKnown, nil, WithClock(fixedClock))

	if !imp.IsAvailable() {
		t.Fatal("expected importer to be available")
	}
	if imp.CookiePathType() != PathFile {
		t.Errorf("CookiePathType = %v, want file", imp.CookiePathType())
	}
	jar := NewCookieJar()
	if res := imp.GetCookies(mustURL(t, "https://example.com/"), jar); res != Success {
		t.Fatalf("GetCookies = %v, want Success", res)
	}
	if jar.Len() != 1 {
		t.Fatalf("jar has %d cookies, want 1", jar.Len())
	}
}

func TestBlinkImporter_GetCookies(t *testing.T) {
	dir := t.TempDir()
	dbPath := createChromeFixture(t, dir, []chromeRow{
		{Name: "sid", Value: "abc", HostKey: ".example.com", Path: "/"},
	})
	imp := NewBlinkImporter(NewBrowserConfig("Chromium", "Default", dbPath, EngineBlink), LevelDerivative, nil, WithClock(fixedClock))
	jar := NewCookieJar()
	if res := imp.GetCookies(mustURL(t, "https://www.example.com/"), jar); res != Success {
		t.Fatalf("GetCookies = %v, want Success", res)
	}
	if jar.HeaderValue(mustURL(t, "https://www.example.com/")) != "sid=abc" {
		t.Fatalf("unexpected jar %+v", jar.Cookies())
	}
}

func TestStoreImporter_IsAvailable(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"empty path", "", false},
		{"missing file", dir + "/missing.sqlite", false},
		{"directory", dir, false},
		{"existing file", createFirefoxFixture(t, dir, nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := NewGeckoImporter(NewBrowserConfig("Firefox", "p", tt.path, EngineGecko), LevelWellKnown, nil)
			if got := imp.IsAvailable(); got != tt.want {
				t.Errorf("IsAvailable() = %v, want %v", got, tt.want)
			}
			if !tt.want {
				jar := NewCookieJar()
				if res := imp.GetCookies(mustURL(t, "https://example.com/"), jar); res != Unavailable {
					t.Errorf("GetCookies = %v, want Unavailable", res)
				}
			}
		})
	}
}

func TestStoreImporter_ReaderFailuresAreClassified(t *testing.T) {
	dir := t.TempDir()
	dbPath := createFirefoxFixture(t, dir, nil)
	conf := NewBrowserConfig("Firefox", "p", dbPath, EngineGecko)

	tests := []struct {
		name string
		err  error
		want ImportResult
	}{
		{"plain error becomes ConvertError", errors.New("bad schema"), ConvertError},
		{"classified error kept", accessError("locked", nil), AccessError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := logger.NewMockLogger()
			reader := StoreReaderFunc(func(string, string, time.Time) ([]Cookie, error) {
				return nil, tt.err
			})
			imp := NewGeckoImporter(conf, LevelWellKnown, reader, WithLogger(mock))
			jar := NewCookieJar()
			jar.Add(Cookie{Name: "keep", Value: "1", Domain: "example.com"})
			if res := imp.GetCookies(mustURL(t, "https://example.com/"), jar); res != tt.want {
				t.Fatalf("GetCookies = %v, want %v", res, tt.want)
			}
			if jar.Len() != 1 {
				t.Errorf("jar modified on failure: %+v", jar.Cookies())
			}
			if len(mock.ErrorCalls) != 1 {
				t.Errorf("expected one error log, got %q", mock.ErrorCalls)
			}
		})
	}
}

func TestStoreImporter_DropsUnsendableRecords(t *testing.T) {
	dir := t.TempDir()
	dbPath := createFirefoxFixture(t, dir, nil)
	reader := StoreReaderFunc(func(string, string, time.Time) ([]Cookie, error) {
		return []Cookie{
			{Name: "ok", Value: "1", Domain: ".example.com", Path: "/"},
			{Name: "stray", Value: "1", Domain: "evil.com", Path: "/"},
		}, nil
	})
	imp := NewGeckoImporter(NewBrowserConfig("Firefox", "p", dbPath, EngineGecko), LevelWellKnown, reader)
	jar := NewCookieJar()
	if res := imp.GetCookies(mustURL(t, "https://example.com/"), jar); res != Success {
		t.Fatalf("GetCookies = %v", res)
	}
	if names := cookieNames(jar.Cookies()); !slices.Equal(names, []string{"ok"}) {
		t.Fatalf("got %v, want [ok]", names)
	}
}

func TestStoreImporter_GenerateKeepsReader(t *testing.T) {
	dir := t.TempDir()
	dbPath := createChromeFixture(t, dir, nil)
	called := false
	reader := StoreReaderFunc(func(string, string, time.Time) ([]Cookie, error) {
		called = true
		return nil, nil
	})
	base := NewBlinkImporter(NewBrowserConfig("Chrome", "Default", "", EngineBlink), LevelWellKnown, reader)
	gen := base.Generate(NewBrowserConfig("Chrome", "Default", dbPath, EngineBlink))

	if gen.Config().CookiePath != dbPath {
		t.Fatalf("generated config = %+v", gen.Config())
	}
	if gen.PrimaryLevel() != LevelWellKnown {
		t.Errorf("PrimaryLevel = %d", gen.PrimaryLevel())
	}
	if res := gen.GetCookies(mustURL(t, "https://example.com/"), NewCookieJar()); res != Success {
		t.Fatalf("GetCookies = %v", res)
	}
	if !called {
		t.Fatal("generated importer did not use the custom reader")
	}
}
