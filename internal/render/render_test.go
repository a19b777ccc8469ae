package render

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func envFrom(vars map[string]string, goos string, tty bool) Env {
	return Env{
		Getenv:     func(k string) string { return vars[k] },
		GOOS:       goos,
		IsTerminal: func() bool { return tty },
	}
}

func TestEnvSupportsStyling(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		goos string
		tty  bool
		want bool
	}{
		{name: "unix terminal", vars: map[string]string{"TERM": "xterm-256color"}, goos: "linux", tty: true, want: true},
		{name: "no color override", vars: map[string]string{"TERM": "xterm", "NO_COLOR": "1"}, goos: "linux", tty: true, want: false},
		{name: "not a terminal", vars: map[string]string{"TERM": "xterm"}, goos: "darwin", tty: false, want: false},
		{name: "dumb terminal", vars: map[string]string{"TERM": "dumb"}, goos: "linux", tty: true, want: false},
		{name: "empty TERM", vars: map[string]string{}, goos: "linux", tty: true, want: false},
		{name: "plain windows console", vars: map[string]string{"TERM": "xterm"}, goos: "windows", tty: true, want: false},
		{name: "windows with ANSICON", vars: map[string]string{"TERM": "xterm", "ANSICON": "1"}, goos: "windows", tty: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, envFrom(tt.vars, tt.goos, tt.tty).SupportsStyling())
		})
	}
}

func TestEnvZeroValueIsPlain(t *testing.T) {
	assert.False(t, Env{}.SupportsStyling())
}

func TestForMode(t *testing.T) {
	styled := envFrom(map[string]string{"TERM": "xterm"}, "linux", true)
	plain := envFrom(map[string]string{}, "linux", false)
	noColor := envFrom(map[string]string{"NO_COLOR": "yes"}, "linux", true)

	assert.True(t, ForMode("auto", styled).SupportsStyling())
	assert.False(t, ForMode("auto", plain).SupportsStyling())
	assert.False(t, ForMode("never", styled).SupportsStyling())
	assert.True(t, ForMode("always", plain).SupportsStyling())
	assert.False(t, ForMode("ALWAYS", noColor).SupportsStyling())
}

func TestPainter(t *testing.T) {
	on := NewPainter(Static(true))
	off := NewPainter(Static(false))

	assert.Equal(t, "\033[1m\033[34mhello\033[0m", on.Paint("hello", Bold, Blue))
	assert.Equal(t, "hello", on.Paint("hello"))
	assert.Equal(t, "hello", off.Paint("hello", Bold, Blue))
	assert.Equal(t, "hello", NewPainter(nil).Paint("hello", Red))
	assert.True(t, on.Enabled())
	assert.False(t, off.Enabled())
}

func TestIsTerminalRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	assert.False(t, IsTerminal(f.Fd()))
	assert.False(t, DetectEnv(f).IsTerminal())
}

func TestStaticSupportsStyling(t *testing.T) {
	assert.True(t, Static(true).SupportsStyling())
	assert.False(t, Static(false).SupportsStyling())
	assert.Equal(t, "\033[0m", string(Reset))
}
