package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/go-i2p/normtime/lib/clock"
	"github.com/go-i2p/normtime/lib/config"
	"github.com/go-i2p/normtime/lib/interchange"
	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes the command line with a private home directory and config.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		config.CfgFile = ""
	})

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

const literal = "Normtime: 0123-04-05N06:07:08\nCivil: 2185-04-30T06:20:28\nUnix: 6795123628\n"

func TestConvert(t *testing.T) {
	assert.Equal(t, literal, mustRun(t, "convert", "0123-04-05N06:07:08"))
	assert.Equal(t, literal, mustRun(t, "convert", "--civil", "2185-04-30T06:20:28"))
	assert.Equal(t, literal, mustRun(t, "unix", "6795123628"))
	assert.Equal(t, "6795123628\n", mustRun(t, "unix", "--to", "0123-04-05N06:07:08"))

	de := mustRun(t, "--locale", "de", "convert", "0123-04-05N06:07:08")
	assert.Equal(t, "Normzeit: 0123-04-05N06:07:08\nZivil: 2185-04-30T06:20:28\nUnix: 6795123628\n", de)

	_, err := run(t, "convert", "tomorrow")
	assert.Error(t, err)
	_, err = run(t, "convert", "--civil", "2185-02-30")
	assert.Error(t, err)
	_, err = run(t, "unix", "soon")
	assert.Error(t, err)
}

func TestFields(t *testing.T) {
	tm, err := normtime.Date(123, 4, 5, 6, 7, 8)
	require.NoError(t, err)

	out := mustRun(t, "--form", "seconds", "fields", "0123-04-05N06:07:08")
	assert.Contains(t, out, "normtime: 3702522028\n")

	var got interchange.Record
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	want := interchange.NewRecord(tm, interchange.FormSeconds)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fields output mismatch (-want +got):\n%s", diff)
	}

	out = mustRun(t, "fields", "--json", "0123-04-05N06:07:08")
	assert.Contains(t, out, `"normtime": "0123-04-05N06:07:08"`)
	assert.Contains(t, out, `"unix": 6795123628`)

	_, err = run(t, "--form", "morse", "fields", "0")
	assert.Error(t, err)
}

func TestArithmetic(t *testing.T) {
	out := mustRun(t, "add", "0123-04-05", "3 normdays 2 hours")
	assert.True(t, strings.HasPrefix(out, "Normtime: 0123-04-08N02:00:00\n"), out)

	assert.Equal(t, "270 normdays 1 hour 23 minutes\n",
		mustRun(t, "diff", "0000-00-00", "0000-09-00N01:23:20"))
	assert.Equal(t, "9 normmonths 1 hour\n",
		mustRun(t, "--units", "normmonths,hours", "diff", "0000-00-00", "0000-09-00N01:23:20"))
	assert.Equal(t, "-27005000\n",
		mustRun(t, "diff", "--seconds", "0000-09-00N01:23:20", "0000-00-00"))
	assert.Equal(t, "270 Normtage 1 Stunde 23 Minuten\n",
		mustRun(t, "--locale", "de-DE", "diff", "0000-00-00", "0000-09-00N01:23:20"))

	_, err := run(t, "add", "0123-04-05", "3 fortnights")
	assert.Error(t, err)
}

func TestAge(t *testing.T) {
	assert.Equal(t, "Mid 20s\n", mustRun(t, "age", "0000-00-00", "--at", "0024-00-00"))
	assert.Equal(t, "Very young\n", mustRun(t, "age", "0000-00-00", "--at", "0001-00-00", "--generic"))
	assert.Equal(t, "Ende 30\n", mustRun(t, "--locale", "de", "age", "0000-00-00", "--at", "0038-05-00"))
}

func TestTex(t *testing.T) {
	assert.Equal(t, "0123-04-05\\,\\uz{}~06:07:08\n", mustRun(t, "tex", "0123-04-05N06:07:08"))
	assert.Equal(t, "0123-04-05\\,\\uz{}\n", mustRun(t, "tex", "--date", "0123-04-05N06:07:08"))
	assert.Equal(t, "900~normdays 1~hour 23~minutes\n", mustRun(t, "tex", "900 normdays 5000 s"))
	assert.Equal(t, "\\qty{900}{\\normday}\\,\\qty{1}{\\hour}\\,\\qty{23}{\\minute}\n",
		mustRun(t, "tex", "--symbols", "900 normdays 5000 s"))

	_, err := run(t, "tex", "later")
	assert.Error(t, err)
}

func TestBinary(t *testing.T) {
	assert.Equal(t, "0000000000000000\n", mustRun(t, "binary", "0000-00-00"))
	assert.Equal(t, "000002d00d6b7800\n", mustRun(t, "binary", "--i2p", "0000-00-00"))
}

func TestScript(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "calendar.star")
	require.NoError(t, os.WriteFile(file, []byte(`
t = normtime.time(1, 2, 3)
print(t)
print((t + normtime.normweek).day)
`), 0o644))

	assert.Equal(t, "0001-02-03N00:00:00\n13\n", mustRun(t, "script", file))

	_, err := run(t, "script", filepath.Join(dir, "missing.star"))
	assert.Error(t, err)
}

func TestWatchPlain(t *testing.T) {
	out := mustRun(t, "watch", "--plain", "--count", "2")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Regexp(t, `^-?\d{4}-\d\d-\d\dN\d\d:\d\d:\d\d  \d{4}-\d\d-\d\dT\d\d:\d\d:\d\d$`, line)
	}
}

func TestWatchPlainStopsOnCancel(t *testing.T) {
	s, err := config.NewSettings(config.Defaults())
	require.NoError(t, err)
	var out bytes.Buffer
	a := &app{settings: s, out: &out}

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.watchPlain(ctx, clock.New(), 0) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after its context was cancelled")
	}
	assert.NotEmpty(t, strings.TrimSpace(out.String()))
}

// fixedOffsetClient answers every query with the same valid response.
type fixedOffsetClient struct {
	offset time.Duration
}

func (c fixedOffsetClient) QueryWithOptions(host string, options ntp.QueryOptions) (*ntp.Response, error) {
	return &ntp.Response{
		Leap:        ntp.LeapNoWarning,
		Stratum:     2,
		RTT:         10 * time.Millisecond,
		ClockOffset: c.offset,
		Time:        time.Now(),
	}, nil
}

func TestNow(t *testing.T) {
	out := mustRun(t, "now")
	assert.Contains(t, out, "Normtime: ")
	assert.NotContains(t, out, "Offset")

	orig := newNTPClient
	defer func() { newNTPClient = orig }()
	newNTPClient = func() clock.NTPClient { return fixedOffsetClient{offset: 1500 * time.Millisecond} }

	out = mustRun(t, "now", "--ntp")
	assert.Contains(t, out, "Offset: 1.5s\n")
}

func TestWatchModel(t *testing.T) {
	s, err := config.NewSettings(config.Defaults())
	require.NoError(t, err)

	a := &app{settings: s}
	c := clock.New()
	m := newWatchModel(a, c)
	require.NoError(t, m.err)
	view := m.View()
	assert.Contains(t, view, "Normtime")
	assert.Contains(t, view, "Civil")
	assert.Contains(t, view, "q to quit")

	next, _ := m.Update(syncMsg{offset: 2 * time.Second})
	assert.Contains(t, next.View(), "Offset: 2s")
}
