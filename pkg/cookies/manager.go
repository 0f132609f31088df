package cookies

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/warpdl/cookiegetter/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// ErrImporterNotFound is returned by Manager.GetInstance when no importer
// matches the requested config and no default applies.
var ErrImporterNotFound = errors.New("no cookie importer matches the browser config")

// BrowserManager discovers the cookie stores of one browser (or engine
// family) and builds importers for them.
type BrowserManager interface {
	// EngineIDs lists the engines whose configs this manager can import.
	EngineIDs() []string
	// CookieImporters returns an importer for every discovered store.
	CookieImporters() []Importer
	// CookieImporter builds an importer for an arbitrary config of one of
	// the manager's engines.
	CookieImporter(config BrowserConfig) Importer
}

// Manager aggregates browser managers.
type Manager struct {
	managers []BrowserManager
	fallback Importer
	log      logger.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithDefaultImporter designates the importer GetInstance falls back to.
func WithDefaultImporter(imp Importer) ManagerOption {
	return func(m *Manager) {
		m.fallback = imp
	}
}

// WithManagerLogger sets the sink for discovery diagnostics.
func WithManagerLogger(l logger.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// NewManager creates a Manager over managers, queried in order.
func NewManager(managers []BrowserManager, opts ...ManagerOption) *Manager {
	m := &Manager{
		managers: managers,
		log:      logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewDefaultManager creates a Manager over the browsers known for the
// current OS and user.
func NewDefaultManager(opts ...Option) *Manager {
	o := newOptions(opts)
	return NewManager(
		DefaultManagers(opts...),
		WithDefaultImporter(defaultImporter(opts...)),
		WithManagerLogger(o.log),
	)
}

// DefaultImporter returns the designated fallback importer, or nil.
func (m *Manager) DefaultImporter() Importer {
	return m.fallback
}

// GetInstances returns the importers of every registered manager in
// registration order. With availableOnly set, importers whose store is
// missing are dropped. Managers are queried concurrently.
func (m *Manager) GetInstances(ctx context.Context, availableOnly bool) ([]Importer, error) {
	return m.collect(ctx, m.managers, availableOnly)
}

// GetInstance resolves a saved config back to a live importer.
//
// Managers are narrowed by engine id first; among their importers the one
// whose config equals target field by field is regenerated for target. A
// customized target with no discovered match is built directly by a manager
// of its engine. Otherwise the default importer is returned when
// allowDefault is set, and ErrImporterNotFound when not.
func (m *Manager) GetInstance(ctx context.Context, target BrowserConfig, allowDefault bool) (Importer, error) {
	var candidates []BrowserManager
	for _, bm := range m.managers {
		if slices.Contains(bm.EngineIDs(), target.EngineID) {
			candidates = append(candidates, bm)
		}
	}

	importers, err := m.collect(ctx, candidates, false)
	if err != nil {
		return nil, err
	}
	for _, imp := range importers {
		if imp.Config() == target {
			return imp.Generate(target), nil
		}
	}

	if target.IsCustomized {
		for _, bm := range candidates {
			if imp := bm.CookieImporter(target); imp != nil {
				return imp, nil
			}
		}
	}

	if allowDefault && m.fallback != nil {
		m.log.Info("no importer for %s, using %s", target, m.fallback.Config())
		return m.fallback, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrImporterNotFound, target)
}

func (m *Manager) collect(ctx context.Context, managers []BrowserManager, availableOnly bool) ([]Importer, error) {
	results := make([][]Importer, len(managers))
	g, gctx := errgroup.WithContext(ctx)
	for i, bm := range managers {
		i, bm := i, bm
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			importers := bm.CookieImporters()
			if availableOnly {
				importers = slices.DeleteFunc(importers, func(imp Importer) bool {
					return !imp.IsAvailable()
				})
			}
			results[i] = importers
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Importer
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// SortByPrimaryLevel orders importers for display, OS browsers first. The
// sort is stable so discovery order is kept within a level.
func SortByPrimaryLevel(importers []Importer) {
	slices.SortStableFunc(importers, func(a, b Importer) int {
		return a.PrimaryLevel() - b.PrimaryLevel()
	})
}

// ImportFirst imports the cookies for u from the first available store that
// succeeds, trying OS browsers first. It returns the importer used.
func (m *Manager) ImportFirst(ctx context.Context, filter BrowserConfigFilter, u *url.URL, jar *CookieJar) (Importer, error) {
	importers, err := m.GetInstances(ctx, true)
	if err != nil {
		return nil, err
	}
	SortByPrimaryLevel(importers)
	for _, imp := range importers {
		if filter != nil && !filter(imp.Config()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := imp.GetCookies(u, jar)
		if res == Success {
			return imp, nil
		}
		m.log.Info("%s: %s, trying next store", imp.Config(), res)
	}
	return nil, fmt.Errorf("%w: no available store succeeded", ErrImporterNotFound)
}

// BrowserConfigFilter selects configs for ImportFirst. A nil filter accepts
// every config.
type BrowserConfigFilter func(BrowserConfig) bool
