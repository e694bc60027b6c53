package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/alexhholmes/typelayout/internal/layout"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Invalid input (bad spec, unresolvable type, unknown type name)
	ExitCommandError = 2 // Command error (bad flags, unreadable files, unsupported input)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Errors that are not an ExitError, such as cobra usage errors, map to
// ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter writes command results as text, JSON, or YAML.
type OutputFormatter struct {
	Format string
	Writer io.Writer
	Color  bool // Style text output with ANSI escapes

	headerStyle  lipgloss.Style
	paddingStyle lipgloss.Style
}

// NewOutputFormatter creates a formatter for w. color is one of
// "auto", "always", or "never"; auto styles only when w is a terminal.
func NewOutputFormatter(format, color string, w io.Writer) *OutputFormatter {
	f := &OutputFormatter{
		Format: format,
		Writer: w,
		Color:  color == "always" || (color == "auto" && isTerminal(w)),
	}

	renderer := lipgloss.NewRenderer(w)
	if f.Color {
		renderer.SetColorProfile(termenv.ANSI)
	}
	f.headerStyle = renderer.NewStyle().Bold(true)
	f.paddingStyle = renderer.NewStyle().Faint(true)

	return f
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Reports writes the reports. Text reports are separated by a blank line.
func (f *OutputFormatter) Reports(reports []layout.Report) error {
	if reports == nil {
		reports = []layout.Report{}
	}

	switch f.Format {
	case "json", "yaml":
		return f.encode(reports)
	}

	for i, r := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(f.Writer); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(f.Writer, f.text(r)); err != nil {
			return err
		}
	}
	return nil
}

// text renders r with layout.Format, styling whole lines when Color is set
// so that cell contents and column widths stay unchanged.
func (f *OutputFormatter) text(r layout.Report) string {
	if !f.Color {
		return layout.Format(r)
	}

	table := layout.Tabulate(r)
	lines := table.Lines()

	var out []byte
	for i, line := range lines {
		switch {
		case i == 0:
			line = f.headerStyle.Render(line)
		case i >= 3 && r.Entries[i-3].Kind == layout.PaddingEntry:
			line = f.paddingStyle.Render(line)
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return string(out)
}

// encode writes v as indented JSON or as YAML.
func (f *OutputFormatter) encode(v any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	enc := yaml.NewEncoder(f.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
