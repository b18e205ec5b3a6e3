package interchange

import (
	"strings"

	"github.com/samber/oops"
)

// Form selects how an Instant is encoded.
type Form int

const (
	// FormText is the canonical Normtime string.
	FormText Form = iota
	// FormSeconds is the Normtime second count as an integer.
	FormSeconds
	// FormFields is a mapping of year, month, day, hour, minute and second.
	FormFields
	// FormCivil is the proleptic Gregorian date and time as an ISO string.
	FormCivil
)

var formNames = [...]string{
	FormText:    "text",
	FormSeconds: "seconds",
	FormFields:  "fields",
	FormCivil:   "civil",
}

// Forms lists every form.
func Forms() []Form {
	return []Form{FormText, FormSeconds, FormFields, FormCivil}
}

func (f Form) String() string {
	if f < 0 || int(f) >= len(formNames) {
		return "unknown"
	}
	return formNames[f]
}

// ParseForm returns the form with the given name, ignoring case.
func ParseForm(s string) (Form, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range formNames {
		if n == name {
			return Form(f), nil
		}
	}
	return FormText, oops.Wrapf(ErrUnknownForm, "%q (want text, seconds, fields or civil)", s)
}

// Set implements pflag.Value.
func (f *Form) Set(s string) error {
	v, err := ParseForm(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Type implements pflag.Value.
func (f *Form) Type() string {
	return "form"
}

// MarshalText implements encoding.TextMarshaler.
func (f Form) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Form) UnmarshalText(text []byte) error {
	return f.Set(string(text))
}
