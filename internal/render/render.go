// Package render decides whether terminal output may carry ANSI styling and
// applies it. Nothing here affects diagnosis results.
package render

import (
	"os"
	"runtime"
	"strings"
)

// Capability reports whether decorative styling may be emitted.
type Capability interface {
	SupportsStyling() bool
}

// Static is a fixed Capability.
type Static bool

// SupportsStyling returns the fixed value.
func (s Static) SupportsStyling() bool { return bool(s) }

// Env inspects the process environment. Its fields are injectable for tests.
type Env struct {
	Getenv     func(string) string
	GOOS       string
	IsTerminal func() bool
}

// DetectEnv builds an Env describing out in the current process.
func DetectEnv(out *os.File) Env {
	return Env{
		Getenv: os.Getenv,
		GOOS:   runtime.GOOS,
		IsTerminal: func() bool {
			return out != nil && IsTerminal(out.Fd())
		},
	}
}

// SupportsStyling applies, in order: the NO_COLOR override, the Windows console
// check (ANSICON must be set), the terminal check and a usable TERM.
func (e Env) SupportsStyling() bool {
	getenv := e.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	if noColor(getenv) {
		return false
	}
	if e.GOOS == "windows" && getenv("ANSICON") == "" {
		return false
	}
	if e.IsTerminal == nil || !e.IsTerminal() {
		return false
	}
	term := strings.TrimSpace(getenv("TERM"))
	return term != "" && term != "dumb"
}

func noColor(getenv func(string) string) bool {
	return getenv("NO_COLOR") != ""
}

// ForMode resolves a configured color mode ("auto", "always", "never") against env.
// NO_COLOR disables styling even when mode is "always".
func ForMode(mode string, env Env) Capability {
	getenv := env.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "never":
		return Static(false)
	case "always":
		return Static(!noColor(getenv))
	default:
		return env
	}
}
