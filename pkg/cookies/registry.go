package cookies

import "fmt"

type importerConstructor func(config BrowserConfig, primaryLevel int, opts []Option) Importer

var engineConstructors = map[string]importerConstructor{
	EngineIE: func(c BrowserConfig, level int, opts []Option) Importer {
		return NewIEImporter(c, level, nil, opts...)
	},
	EngineIEFindCache: func(c BrowserConfig, level int, opts []Option) Importer {
		return NewIEFindCacheImporter(c, level, opts...)
	},
	EngineBlink: func(c BrowserConfig, level int, opts []Option) Importer {
		return NewBlinkImporter(c, level, nil, opts...)
	},
	EngineGecko: func(c BrowserConfig, level int, opts []Option) Importer {
		return NewGeckoImporter(c, level, nil, opts...)
	},
	EngineNetscape: func(c BrowserConfig, level int, opts []Option) Importer {
		return NewNetscapeImporter(c, level, opts...)
	},
}

// NewImporter creates the importer matching config.EngineID.
func NewImporter(config BrowserConfig, primaryLevel int, opts ...Option) (Importer, error) {
	ctor, ok := engineConstructors[config.EngineID]
	if !ok {
		return nil, fmt.Errorf("unknown cookie engine %q", config.EngineID)
	}
	return ctor(config, primaryLevel, opts), nil
}
