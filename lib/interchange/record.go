package interchange

import (
	"encoding/json"
	"io"

	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Record describes one instant in every view the tools print.
type Record struct {
	Normtime Instant   `yaml:"normtime" json:"normtime"`
	Seconds  int64     `yaml:"seconds" json:"seconds"`
	Fields   FieldsDoc `yaml:"fields" json:"fields"`
	Civil    string    `yaml:"civil,omitempty" json:"civil,omitempty"`
	Unix     *int64    `yaml:"unix,omitempty" json:"unix,omitempty"`
}

// NewRecord builds the Record for t, encoding the normtime entry in form f.
// Civil and Unix are left empty when t has no representation there.
func NewRecord(t normtime.Time, f Form) Record {
	r := Record{
		Normtime: NewInstant(t, f),
		Seconds:  t.Seconds(),
		Fields:   NewFieldsDoc(t),
	}
	if c, err := t.Civil(); err == nil {
		r.Civil = c.String()
	}
	if u, err := t.Unix(); err == nil {
		r.Unix = &u
	}
	return r
}

// EncodeYAML writes v to w as a YAML document with two-space indentation.
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return oops.Wrapf(err, "encoding yaml")
	}
	return oops.Wrapf(enc.Close(), "closing yaml encoder")
}

// EncodeJSON writes v to w as indented JSON followed by a newline.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return oops.Wrapf(enc.Encode(v), "encoding json")
}
