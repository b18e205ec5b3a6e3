package interchange

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Instant is a normtime.Time together with the form it is encoded in.
type Instant struct {
	Time normtime.Time
	Form Form
}

// NewInstant returns t wrapped for encoding in form f.
func NewInstant(t normtime.Time, f Form) Instant {
	return Instant{Time: t, Form: f}
}

// FieldsDoc is the mapping used by FormFields.
type FieldsDoc struct {
	Year   int64 `yaml:"year" json:"year"`
	Month  int   `yaml:"month" json:"month"`
	Day    int   `yaml:"day" json:"day"`
	Hour   int   `yaml:"hour" json:"hour"`
	Minute int   `yaml:"minute" json:"minute"`
	Second int   `yaml:"second" json:"second"`
}

// NewFieldsDoc returns the field mapping of t.
func NewFieldsDoc(t normtime.Time) FieldsDoc {
	f := t.Fields()
	return FieldsDoc{
		Year:   f.Year,
		Month:  f.Month,
		Day:    f.Day,
		Hour:   f.Hour,
		Minute: f.Minute,
		Second: f.Second,
	}
}

// Time returns the instant named by the mapping.
func (d FieldsDoc) Time() (normtime.Time, error) {
	return normtime.Date(d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
}

// value returns the plain Go value that both YAML and JSON encode.
func (i Instant) value() (any, error) {
	switch i.Form {
	case FormText:
		return i.Time.String(), nil
	case FormSeconds:
		return i.Time.Seconds(), nil
	case FormFields:
		return NewFieldsDoc(i.Time), nil
	case FormCivil:
		c, err := i.Time.Civil()
		if err != nil {
			return nil, oops.Wrapf(err, "encoding %s in civil form", i.Time)
		}
		return c.String(), nil
	default:
		return nil, oops.Wrapf(ErrUnknownForm, "form %d", int(i.Form))
	}
}

// MarshalYAML implements yaml.Marshaler.
func (i Instant) MarshalYAML() (any, error) {
	return i.value()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *Instant) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.ShortTag() == "!!int" {
			var n int64
			if err := value.Decode(&n); err != nil {
				return oops.Wrapf(normtime.ErrOutOfRange, "second count %q at line %d", value.Value, value.Line)
			}
			*i = Instant{Time: normtime.FromSeconds(n), Form: FormSeconds}
			return nil
		}
		return i.decodeString(value.Value)
	case yaml.MappingNode:
		var doc FieldsDoc
		if err := value.Decode(&doc); err != nil {
			return oops.Wrapf(ErrDecode, "fields at line %d: %v", value.Line, err)
		}
		return i.decodeFields(doc)
	default:
		log.WithFields(logger.Fields{
			"at":   "Instant.UnmarshalYAML",
			"kind": value.Kind,
			"line": value.Line,
		}).Debug("unsupported yaml node for instant")
		return oops.Wrapf(ErrDecode, "instant at line %d", value.Line)
	}
}

// MarshalJSON implements json.Marshaler.
func (i Instant) MarshalJSON() ([]byte, error) {
	v, err := i.value()
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Instant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return oops.Wrapf(ErrDecode, "empty instant")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return oops.Wrapf(ErrDecode, "instant string: %v", err)
		}
		return i.decodeString(s)
	case '{':
		var doc FieldsDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return oops.Wrapf(ErrDecode, "instant fields: %v", err)
		}
		return i.decodeFields(doc)
	default:
		var n int64
		if err := json.Unmarshal(data, &n); err != nil {
			log.WithFields(logger.Fields{
				"at":     "Instant.UnmarshalJSON",
				"input":  string(data),
				"reason": err.Error(),
			}).Debug("instant is not a second count")
			return oops.Wrapf(ErrDecode, "instant %s", data)
		}
		*i = Instant{Time: normtime.FromSeconds(n), Form: FormSeconds}
		return nil
	}
}

// decodeString accepts the canonical Normtime text and falls back to a
// civil date.
func (i *Instant) decodeString(s string) error {
	t, err := normtime.Parse(s)
	if err == nil {
		*i = Instant{Time: t, Form: FormText}
		return nil
	}
	if !errors.Is(err, normtime.ErrParse) {
		return err
	}
	c, cerr := normtime.ParseCivil(s)
	if cerr != nil {
		if errors.Is(cerr, normtime.ErrParse) {
			return err
		}
		return cerr
	}
	t, cerr = normtime.FromCivil(c)
	if cerr != nil {
		return cerr
	}
	*i = Instant{Time: t, Form: FormCivil}
	return nil
}

func (i *Instant) decodeFields(doc FieldsDoc) error {
	t, err := doc.Time()
	if err != nil {
		return err
	}
	*i = Instant{Time: t, Form: FormFields}
	return nil
}
