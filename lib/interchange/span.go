package interchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Span is a normtime.Duration encoded as a number of seconds.
type Span struct {
	normtime.Duration
}

// NewSpan wraps d.
func NewSpan(d normtime.Duration) Span {
	return Span{Duration: d}
}

// parseDecimal is the inverse of Duration.Decimal. It accepts at most nine
// fractional digits so that no precision is dropped.
func parseDecimal(s string) (normtime.Duration, error) {
	whole, frac, found := strings.Cut(s, ".")
	secs, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return normtime.Duration{}, oops.Wrapf(normtime.ErrOutOfRange, "second count %q", s)
		}
		return normtime.Duration{}, oops.Wrapf(normtime.ErrParse, "second count %q", s)
	}
	if !found {
		return normtime.Seconds(secs), nil
	}
	if frac == "" || len(frac) > 9 || strings.TrimLeft(frac, "0123456789") != "" {
		return normtime.Duration{}, oops.Wrapf(normtime.ErrParse, "fraction of %q", s)
	}
	nanos, _ := strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
	if strings.HasPrefix(whole, "-") {
		nanos = -nanos
	}
	return normtime.NewDuration(secs, nanos)
}

// MarshalYAML implements yaml.Marshaler.
func (s Span) MarshalYAML() (any, error) {
	tag := "!!int"
	if s.SubsecNanos() != 0 {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: s.Decimal()}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Numbers are seconds; strings
// go through normtime.ParseDuration.
func (s *Span) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		log.WithFields(logger.Fields{
			"at":   "Span.UnmarshalYAML",
			"kind": value.Kind,
			"line": value.Line,
		}).Debug("unsupported yaml node for span")
		return oops.Wrapf(ErrDecode, "span at line %d", value.Line)
	}
	var (
		d   normtime.Duration
		err error
	)
	switch value.ShortTag() {
	case "!!int", "!!float":
		d, err = parseDecimal(value.Value)
	default:
		d, err = normtime.ParseDuration(value.Value)
	}
	if err != nil {
		return err
	}
	s.Duration = d
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Span) MarshalJSON() ([]byte, error) {
	return []byte(s.Decimal()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Span) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return oops.Wrapf(ErrDecode, "span string: %v", err)
		}
		d, err := normtime.ParseDuration(text)
		if err != nil {
			return err
		}
		s.Duration = d
		return nil
	}
	d, err := parseDecimal(string(data))
	if err != nil {
		return err
	}
	s.Duration = d
	return nil
}
