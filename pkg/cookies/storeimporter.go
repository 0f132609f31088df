package cookies

import (
	"net/url"

	"github.com/spf13/afero"
)

// storeImporter is the shared body of the importers backed by one SQLite
// database file.
type storeImporter struct {
	importerBase
	reader StoreReader
}

func newStoreImporter(config BrowserConfig, level int, reader StoreReader, opts []Option) storeImporter {
	return storeImporter{
		importerBase: newImporterBase(config, PathFile, level, opts),
		reader:       reader,
	}
}

// IsAvailable reports whether CookiePath names an existing regular file.
func (s *storeImporter) IsAvailable() bool {
	return isRegularFile(s.opts.fs, s.config.CookiePath)
}

func (s *storeImporter) GetCookies(target *url.URL, jar *CookieJar) ImportResult {
	return s.getCookies(s.IsAvailable(), s.extract, target, jar)
}

func (s *storeImporter) extract(target *url.URL, staging *CookieJar) error {
	copyPath, cleanup, err := SafeCopy(s.opts.fs, s.config.CookiePath)
	if err != nil {
		return accessError("cannot snapshot cookie store", err)
	}
	defer cleanup()

	read, err := s.reader.ReadCookies(copyPath, target.Hostname(), s.opts.now())
	if err != nil {
		if ResultOf(err) == UnknownError {
			return convertError("cannot decode cookie store", err)
		}
		return err
	}
	for _, c := range read {
		if c.IsSendableTo(target.Hostname()) {
			staging.Add(c)
		}
	}
	return nil
}

func isRegularFile(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}
	info, err := fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// BlinkImporter reads a Chromium-family "Cookies" database.
type BlinkImporter struct {
	storeImporter
}

// NewBlinkImporter creates a Blink importer. A nil reader selects ParseChrome.
func NewBlinkImporter(config BrowserConfig, primaryLevel int, reader StoreReader, opts ...Option) *BlinkImporter {
	if reader == nil {
		reader = StoreReaderFunc(ParseChrome)
	}
	return &BlinkImporter{storeImporter: newStoreImporter(config, primaryLevel, reader, opts)}
}

func (b *BlinkImporter) Generate(config BrowserConfig) Importer {
	return NewBlinkImporter(config, b.level, b.reader, b.opts.asList()...)
}

// GeckoImporter reads a Firefox-family "cookies.sqlite" database.
type GeckoImporter struct {
	storeImporter
}

// NewGeckoImporter creates a Gecko importer. A nil reader selects ParseFirefox.
func NewGeckoImporter(config BrowserConfig, primaryLevel int, reader StoreReader, opts ...Option) *GeckoImporter {
	if reader == nil {
		reader = StoreReaderFunc(ParseFirefox)
	}
	return &GeckoImporter{storeImporter: newStoreImporter(config, primaryLevel, reader, opts)}
}

func (g *GeckoImporter) Generate(config BrowserConfig) Importer {
	return NewGeckoImporter(config, g.level, g.reader, g.opts.asList()...)
}
