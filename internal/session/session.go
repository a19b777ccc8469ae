// Package session drives the user-facing conversation: the interactive prompt
// and the canned demonstration, both rendered through a render.Painter.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yashubustudio/symptomcheck/diagnosis"
	"yashubustudio/symptomcheck/internal/render"
)

// FarewellLines are printed after every session regardless of mode.
var FarewellLines = []string{
	"⚠️  This is an AI-based suggestion only.",
	"📞 Please consult a certified doctor in real life.",
	"🙏 Thank you for using the system. Stay healthy!",
}

var exitWords = []string{"exit", "quit", "q"}

// DemoCases returns the canned queries of the demonstration run, in order.
func DemoCases() [][]string {
	return [][]string{
		{"fever", "cough"},
		{"headache", "blurred vision"},
		{"shortness breath", "wheezing"},
		{"abdominal pain", "vomiting"},
		{"loss_interest", "fatigue"},
		{"chronic cough", "weight loss"},
		{"red eyes", "itchy eyes"},
	}
}

// Options wires the driver to its collaborators. Nil fields get defaults:
// empty input, discarded output, plain text and a no-op logger.
type Options struct {
	In         io.Reader
	Out        io.Writer
	Capability render.Capability
	Logger     *zap.Logger
}

// Driver runs one session against an engine.
type Driver struct {
	engine *diagnosis.Engine
	in     io.Reader
	out    io.Writer
	paint  *render.Painter
	logger *zap.Logger
	id     string
}

// New constructs a driver.
func New(engine *diagnosis.Engine, opts Options) *Driver {
	d := &Driver{
		engine: engine,
		in:     opts.In,
		out:    opts.Out,
		paint:  render.NewPainter(opts.Capability),
		logger: opts.Logger,
		id:     uuid.NewString(),
	}
	if d.in == nil {
		d.in = strings.NewReader("")
	}
	if d.out == nil {
		d.out = io.Discard
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	d.logger = d.logger.With(zap.String("session_id", d.id))
	return d
}

// ID identifies the session in logs.
func (d *Driver) ID() string {
	return d.id
}

// ResolveMode turns "auto" into interactive or demo depending on whether input is a terminal.
func ResolveMode(mode diagnosis.SessionMode, inputIsTerminal bool) diagnosis.SessionMode {
	switch mode {
	case diagnosis.ModeInteractive, diagnosis.ModeDemo:
		return mode
	}
	if inputIsTerminal {
		return diagnosis.ModeInteractive
	}
	return diagnosis.ModeDemo
}

// Run prints the symptom list, runs the selected mode and closes with the farewell lines.
func (d *Driver) Run(ctx context.Context, mode diagnosis.SessionMode) error {
	d.logger.Info("session started", zap.String("mode", string(mode)))
	d.PrintSymptoms()
	var err error
	if mode == diagnosis.ModeInteractive {
		err = d.Interactive(ctx)
	} else {
		d.Demo(ctx)
	}
	d.Farewell()
	d.logger.Info("session finished")
	return err
}

// PrintSymptoms lists every known symptom token.
func (d *Driver) PrintSymptoms() {
	d.println(d.paint.Paint("Available symptoms:", render.Bold, render.Cyan))
	d.println(strings.Join(d.engine.KnowledgeBase().AllSymptoms(), ", "))
}

// Interactive reads comma separated symptom lines until an exit word, end of
// input or cancellation of ctx.
func (d *Driver) Interactive(ctx context.Context) error {
	d.banner()
	d.println(d.paint.Paint("Enter symptoms separated by commas (type 'exit' to quit).\n", render.Cyan))

	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := readLines(readCtx, d.in)
loop:
	for {
		d.print(d.paint.Paint("Symptoms> ", render.Blue))
		select {
		case <-ctx.Done():
			d.println("")
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			if isExitWord(line) {
				break loop
			}
			d.Diagnose(diagnosis.ParseSymptomLine(line))
		}
	}
	d.println(d.paint.Paint("Goodbye!", render.Dim))

	select {
	case err := <-readErr:
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	default:
	}
	return nil
}

// Demo diagnoses each of DemoCases without prompting.
func (d *Driver) Demo(ctx context.Context) {
	d.banner()
	for _, c := range DemoCases() {
		if ctx.Err() != nil {
			return
		}
		d.println(d.paint.Paint("\nDemo: "+strings.Join(c, ", "), render.Bold))
		d.Diagnose(c)
	}
}

// Diagnose runs one query and renders its outcome.
func (d *Driver) Diagnose(raw []string) {
	results, err := d.engine.Diagnose(raw)
	switch {
	case errors.Is(err, diagnosis.ErrEmptySymptomSet):
		d.println(d.paint.Paint("No symptoms entered.", render.Yellow))
		return
	case errors.Is(err, diagnosis.ErrNoMatch):
		d.println(d.paint.Paint("No matching disease found.", render.Red))
		return
	case err != nil:
		d.logger.Error("diagnosis failed", zap.Error(err))
		return
	}
	d.logger.Debug("diagnosed", zap.Int("results", len(results)), zap.String("top", results[0].Disease))
	d.println(d.paint.Paint("\nLikely diagnoses:", render.Bold, render.Magenta))
	d.println(d.paint.Paint("────────────────────────────────", render.Dim))
	for _, r := range results {
		d.println(FormatResult(d.paint, r))
	}
}

// Farewell prints the closing disclaimer.
func (d *Driver) Farewell() {
	for _, line := range FarewellLines {
		d.println(line)
	}
	d.println("")
}

func (d *Driver) banner() {
	d.println(d.paint.Paint("\nAI MEDICAL DIAGNOSIS", render.Bold, render.Blue))
	d.println(d.paint.Paint("Rule-based symptom checker\n", render.Dim, render.Cyan))
}

func (d *Driver) print(s string) {
	_, _ = io.WriteString(d.out, s)
}

func (d *Driver) println(s string) {
	_, _ = io.WriteString(d.out, s+"\n")
}

func isExitWord(line string) bool {
	line = strings.TrimSpace(line)
	for _, w := range exitWords {
		if strings.EqualFold(line, w) {
			return true
		}
	}
	return false
}

// readLines feeds input lines to a channel that is closed at end of input. A
// scanner error, if any, is delivered on the second channel.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}
