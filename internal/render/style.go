package render

import "strings"

// Style is an ANSI SGR sequence.
type Style string

// Styles used by the session output. Reset clears any active attribute.
const (
	Reset   Style = "\033[0m"  // clear attributes
	Bold    Style = "\033[1m"  // bold weight
	Dim     Style = "\033[2m"  // faint weight
	Red     Style = "\033[31m" // red foreground
	Green   Style = "\033[32m" // green foreground
	Yellow  Style = "\033[33m" // yellow foreground
	Blue    Style = "\033[34m" // blue foreground
	Magenta Style = "\033[35m" // magenta foreground
	Cyan    Style = "\033[36m" // cyan foreground
)

// Painter wraps text in styles when its capability allows it. The decision is
// taken once at construction.
type Painter struct {
	enabled bool
}

// NewPainter constructs a painter; a nil capability means plain text.
func NewPainter(c Capability) *Painter {
	return &Painter{enabled: c != nil && c.SupportsStyling()}
}

// Enabled reports whether Paint emits escape sequences.
func (p *Painter) Enabled() bool {
	return p != nil && p.enabled
}

// Paint returns text wrapped in the given styles, or text unchanged when styling is off.
func (p *Painter) Paint(text string, styles ...Style) string {
	if !p.Enabled() || len(styles) == 0 {
		return text
	}
	var b strings.Builder
	for _, s := range styles {
		b.WriteString(string(s))
	}
	b.WriteString(text)
	b.WriteString(string(Reset))
	return b.String()
}
