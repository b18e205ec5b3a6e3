package locale

import "errors"

var (
	// ErrLocale is returned for a language tag that cannot be parsed.
	ErrLocale = errors.New("locale: malformed language tag")

	// ErrCatalog is returned for a translation catalog that is incomplete
	// or not valid YAML.
	ErrCatalog = errors.New("locale: invalid catalog")
)
