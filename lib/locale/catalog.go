package locale

import (
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/samber/oops"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// Plural holds the singular and plural form of a word.
type Plural struct {
	One   string `yaml:"one"`
	Other string `yaml:"other"`
}

// Pick returns One for a count of 1 and Other otherwise.
func (p Plural) Pick(n int64) string {
	if n == 1 {
		return p.One
	}
	return p.Other
}

// Stage names one age bracket, once for people and once in generic terms.
type Stage struct {
	Specific string `yaml:"specific"`
	Generic  string `yaml:"generic"`
}

// Ages holds the words used by Roughly. Early, Mid and Late contain the
// placeholder {n} for the decade.
type Ages struct {
	Unborn string `yaml:"unborn"`
	Infant Stage  `yaml:"infant"`
	Child  Stage  `yaml:"child"`
	Teen   Stage  `yaml:"teen"`
	Early  string `yaml:"early"`
	Mid    string `yaml:"mid"`
	Late   string `yaml:"late"`
}

// Catalog is the translation table of one language.
type Catalog struct {
	Tag     string            `yaml:"tag"`
	Decimal string            `yaml:"decimal"`
	Units   map[string]Plural `yaml:"units"`
	Ages    Ages              `yaml:"ages"`
	Labels  map[string]string `yaml:"labels"`
}

// Validate checks that every unit has both forms and that the decade
// templates carry their placeholder.
func (c *Catalog) Validate() error {
	if _, err := language.Parse(c.Tag); err != nil {
		return oops.Wrapf(ErrCatalog, "tag %q: %v", c.Tag, err)
	}
	for _, u := range normtime.Units() {
		p, ok := c.Units[u.String()]
		if !ok || p.One == "" || p.Other == "" {
			return oops.Wrapf(ErrCatalog, "%s: missing names for %s", c.Tag, u)
		}
	}
	for _, tpl := range []string{c.Ages.Early, c.Ages.Mid, c.Ages.Late} {
		if !strings.Contains(tpl, "{n}") {
			return oops.Wrapf(ErrCatalog, "%s: age template %q lacks {n}", c.Tag, tpl)
		}
	}
	if c.Decimal == "" {
		c.Decimal = "."
	}
	return nil
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(doc []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(doc, &c); err != nil {
		return nil, oops.Wrapf(ErrCatalog, "decoding catalog: %v", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// loadCatalogs reads every embedded catalog, sorted by tag with en-US
// first so that it is the fallback of the matcher.
func loadCatalogs() ([]*Catalog, error) {
	entries, err := catalogFS.ReadDir("catalogs")
	if err != nil {
		return nil, oops.Wrapf(err, "listing catalogs")
	}
	var out []*Catalog
	for _, e := range entries {
		doc, err := catalogFS.ReadFile(path.Join("catalogs", e.Name()))
		if err != nil {
			return nil, oops.Wrapf(err, "reading %s", e.Name())
		}
		c, err := ParseCatalog(doc)
		if err != nil {
			log.WithError(err).WithField("file", e.Name()).Error("invalid embedded catalog")
			return nil, err
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tag == fallbackTag || out[j].Tag == fallbackTag {
			return out[i].Tag == fallbackTag
		}
		return out[i].Tag < out[j].Tag
	})
	log.WithFields(logger.Fields{
		"at":       "locale.loadCatalogs",
		"catalogs": len(out),
	}).Debug("loaded embedded catalogs")
	return out, nil
}
