// Package menu runs the interactive report menu: it reads numbered choices
// and scope values from an input stream, runs the chosen report and prints
// the table, optionally saving it as a Markdown file.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"world-report/internal/observability/logging"
	"world-report/internal/query"
	"world-report/internal/render"
	"world-report/internal/usecase/report"
)

// Runner executes one report request.
type Runner interface {
	Run(ctx context.Context, req query.Request) report.Report
}

// Saver persists a rendered report under a file name.
type Saver interface {
	Save(name string, t render.Table) string
}

type theme struct {
	banner  *color.Color
	prompt  *color.Color
	invalid *color.Color
	bye     *color.Color
}

func newTheme(enabled bool) theme {
	t := theme{
		banner:  color.New(color.FgCyan, color.Bold),
		prompt:  color.New(color.FgYellow),
		invalid: color.New(color.FgRed),
		bye:     color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{t.banner, t.prompt, t.invalid, t.bye} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

// Menu is the interactive report loop.
type Menu struct {
	in     *bufio.Scanner
	out    io.Writer
	runner Runner
	saver  Saver
	theme  theme
}

// Option configures a Menu.
type Option func(*Menu)

// WithSaver writes every rendered report through s.
func WithSaver(s Saver) Option {
	return func(m *Menu) { m.saver = s }
}

// WithColor forces colour output on or off. By default colour follows the
// terminal detection of the color package.
func WithColor(enabled bool) Option {
	return func(m *Menu) { m.theme = newTheme(enabled) }
}

// New creates a menu reading choices from in and printing to out.
func New(in io.Reader, out io.Writer, runner Runner, opts ...Option) *Menu {
	m := &Menu{
		in:     bufio.NewScanner(in),
		out:    out,
		runner: runner,
		theme:  newTheme(!color.NoColor),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var (
	errInputClosed   = errors.New("input closed")
	errInvalidNumber = errors.New("invalid number")
)

// Start runs the loop until the operator chooses 0, the input ends or ctx is
// cancelled. A failed report never ends the loop.
func (m *Menu) Start(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMenu()

		line, err := m.ask("Enter your choice: ")
		if err != nil {
			return m.endOfInput(err)
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			m.theme.invalid.Fprintln(m.out, "Invalid choice. Try again.")
			continue
		}
		if choice == 0 {
			m.theme.bye.Fprintln(m.out, "Exiting menu...")
			return nil
		}
		entry, ok := Lookup(choice)
		if !ok {
			m.theme.invalid.Fprintln(m.out, "Invalid choice. Try again.")
			continue
		}

		req, err := m.request(entry)
		if errors.Is(err, errInputClosed) {
			return m.endOfInput(err)
		}
		if errors.Is(err, errInvalidNumber) {
			m.theme.invalid.Fprintln(m.out, "Invalid number. Try again.")
			continue
		}
		if err != nil {
			return err
		}
		if err := Execute(ctx, m.out, m.runner, m.saver, req); err != nil {
			return err
		}
	}
}

func (m *Menu) endOfInput(err error) error {
	if errors.Is(err, errInputClosed) {
		fmt.Fprintln(m.out)
		return nil
	}
	return err
}

func (m *Menu) printMenu() {
	m.theme.banner.Fprintln(m.out, "\n=== Population Report Menu ===")
	for _, e := range Entries {
		fmt.Fprintf(m.out, "%d. %s\n", e.Choice, e.Label)
	}
	fmt.Fprintln(m.out, "0. Exit")
}

// request collects the scope value and N an entry needs.
func (m *Menu) request(e Entry) (query.Request, error) {
	req := query.Request{Family: e.Family, Scope: e.Scope, Cardinality: query.All()}
	if e.needsFilter() {
		filter, err := m.ask(filterPrompts[e.Scope])
		if err != nil {
			return req, err
		}
		req.Filter = filter
	}
	if e.Top {
		line, err := m.ask("Enter N: ")
		if err != nil {
			return req, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return req, fmt.Errorf("%w: %q", errInvalidNumber, line)
		}
		req.Cardinality = query.Top(n)
	}
	return req, nil
}

func (m *Menu) ask(prompt string) (string, error) {
	m.theme.prompt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// Execute runs req, prints the table to out and, when saver is set, writes
// the same table to the report's file name.
func Execute(ctx context.Context, out io.Writer, runner Runner, saver Saver, req query.Request) error {
	ctx, _ = logging.WithInvocationID(ctx, logging.FromContext(ctx))
	rep := runner.Run(ctx, req)
	if err := render.Fprint(out, rep.Table, rep.NotFound); err != nil {
		return fmt.Errorf("print report: %w", err)
	}
	if saver != nil {
		saver.Save(report.FileName(req), rep.Table)
	}
	return nil
}
