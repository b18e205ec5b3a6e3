package interchange

import (
	"encoding/json"
	"testing"

	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type window struct {
	Length Span `yaml:"length" json:"length"`
}

func span(t *testing.T, secs int64, nanos int) Span {
	t.Helper()
	d, err := normtime.NewDuration(secs, nanos)
	require.NoError(t, err)
	return NewSpan(d)
}

func TestSpanEncoding(t *testing.T) {
	tests := []struct {
		name  string
		span  Span
		plain string
	}{
		{"zero", span(t, 0, 0), "0"},
		{"normday", span(t, 100_000, 0), "100000"},
		{"negative", span(t, -42, 0), "-42"},
		{"fraction", span(t, 1, 500_000_000), "1.5"},
		{"negative fraction", span(t, 0, -250_000_000), "-0.25"},
		{"negative whole and fraction", span(t, -1, -500_000_000), "-1.5"},
		{"nanosecond", span(t, 0, 1), "0.000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(window{Length: tt.span})
			require.NoError(t, err)
			assert.JSONEq(t, `{"length":`+tt.plain+`}`, string(out))

			var back window
			require.NoError(t, json.Unmarshal(out, &back))
			assert.Equal(t, tt.span, back.Length)

			doc, err := yaml.Marshal(window{Length: tt.span})
			require.NoError(t, err)
			assert.Equal(t, "length: "+tt.plain+"\n", string(doc))

			back = window{}
			require.NoError(t, yaml.Unmarshal(doc, &back))
			assert.Equal(t, tt.span, back.Length)
		})
	}
}

func TestSpanDecodeStrings(t *testing.T) {
	assert := assert.New(t)

	var w window
	require.NoError(t, yaml.Unmarshal([]byte("length: 2 normdays 3 hours"), &w))
	assert.Equal(normtime.Seconds(210_800), w.Length.Duration)

	require.NoError(t, json.Unmarshal([]byte(`{"length":"1 normweek"}`), &w))
	assert.Equal(normtime.Seconds(1_000_000), w.Length.Duration)

	require.NoError(t, yaml.Unmarshal([]byte("length: '42'"), &w))
	assert.Equal(normtime.Seconds(42), w.Length.Duration)
}

func TestSpanDecodeErrors(t *testing.T) {
	var w window

	assert.ErrorIs(t, yaml.Unmarshal([]byte("length: [1]"), &w), ErrDecode)
	assert.ErrorIs(t, yaml.Unmarshal([]byte("length: 1 fortnight"), &w), normtime.ErrParse)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"length":1.0000000001}`), &w), normtime.ErrParse)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"length":1e3}`), &w), normtime.ErrParse)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"length":99999999999999999999}`), &w), normtime.ErrOutOfRange)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"length":-9223372036854775808.5}`), &w), normtime.ErrOutOfRange)
}
