package cookies

import (
	"net/url"
	"time"

	"github.com/spf13/afero"
	"github.com/warpdl/cookiegetter/pkg/logger"
)

// Importer reads the cookies of one browser cookie store.
type Importer interface {
	// Config returns the store the importer is bound to.
	Config() BrowserConfig
	// CookiePathType tells whether the store is a file or a directory.
	CookiePathType() PathType
	// IsAvailable reports whether the store exists and is usable.
	IsAvailable() bool
	// PrimaryLevel ranks the browser for display: LevelOS, LevelWellKnown
	// or LevelDerivative.
	PrimaryLevel() int
	// GetCookies adds the cookies usable against target to jar. It never
	// panics. On any result other than Success jar is left unmodified.
	GetCookies(target *url.URL, jar *CookieJar) ImportResult
	// Generate returns an importer of the same kind bound to config.
	Generate(config BrowserConfig) Importer
}

// Option configures an importer or browser manager.
type Option func(*options)

type options struct {
	log logger.Logger
	fs  afero.Fs
	now func() time.Time
}

func newOptions(opts []Option) options {
	o := options{
		log: logger.NewNopLogger(),
		fs:  afero.NewOsFs(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// asList turns resolved options back into an Option list so generated
// importers inherit them.
func (o options) asList() []Option {
	return []Option{WithLogger(o.log), WithFs(o.fs), WithClock(o.now)}
}

// WithLogger sets the sink for import diagnostics. Defaults to a NopLogger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithFs sets the filesystem used for discovery and directory-backed stores.
// Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithClock sets the time source used for synthesized expiry dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// extractFunc reads a store into a staging jar. Classified failures are
// returned as *ImportError.
type extractFunc func(target *url.URL, staging *CookieJar) error

// importerBase holds what every importer shares and implements the common
// GetCookies flow around a concrete extractFunc.
type importerBase struct {
	config   BrowserConfig
	pathType PathType
	level    int
	opts     options
}

func newImporterBase(config BrowserConfig, pathType PathType, level int, opts []Option) importerBase {
	return importerBase{
		config:   config,
		pathType: pathType,
		level:    level,
		opts:     newOptions(opts),
	}
}

func (b *importerBase) Config() BrowserConfig {
	return b.config
}

func (b *importerBase) CookiePathType() PathType {
	return b.pathType
}

func (b *importerBase) PrimaryLevel() int {
	return b.level
}

// getCookies gates on availability, runs extract against a private jar and
// commits to jar only when extract succeeds.
func (b *importerBase) getCookies(available bool, extract extractFunc, target *url.URL, jar *CookieJar) (result ImportResult) {
	if !available {
		return Unavailable
	}
	if target == nil || jar == nil {
		b.opts.log.Error("%s: cookie import called without target url or jar", b.config)
		return UnknownError
	}
	defer func() {
		if r := recover(); r != nil {
			b.opts.log.Error("%s: cookie import aborted for %s: %v", b.config, target.Host, r)
			result = UnknownError
		}
	}()

	staging := NewCookieJar()
	if err := extract(target, staging); err != nil {
		result = ResultOf(err)
		b.opts.log.Error("%s: cookie import failed for %s [%s]: %v", b.config, target.Host, result, err)
		return result
	}
	if b.config.SecureOnly {
		for i := range staging.cookies {
			staging.cookies[i].Secure = true
		}
	}
	jar.Merge(staging)
	return Success
}
