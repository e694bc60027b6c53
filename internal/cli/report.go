package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexhholmes/typelayout/internal/analyzer"
	"github.com/alexhholmes/typelayout/internal/layout"
	"github.com/alexhholmes/typelayout/internal/parser"
	"github.com/alexhholmes/typelayout/internal/specfile"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	Types []string
	Arch  string
	All   bool
}

// namedReport pairs a report with the Go type it was computed for.
// GoName is empty for spec file structures.
type namedReport struct {
	GoName string
	Report layout.Report
}

func (n namedReport) matches(name string) bool {
	return name == n.Report.TypeName || (n.GoName != "" && name == n.GoName)
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report <file.go|spec.yaml|spec.json>...",
		Short: "Print the memory layout of structures",
		Long: `Print the memory layout of structures.

Go source files contribute their @layout annotated struct types (every
struct type with --all), sized for the target architecture. YAML and
JSON spec files contribute the structures they list.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("arch") {
				opts.Arch = rootOpts.Config.Arch
			}
			if !cmd.Flags().Changed("all") {
				opts.All = rootOpts.Config.All
			}
			return runReport(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Types, "type", "t", nil, "only report the named types (Go or report name)")
	cmd.Flags().StringVar(&opts.Arch, "arch", "", "target GOARCH for Go sources (default from config or host)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "report every struct type in Go sources, not only annotated ones")

	return cmd
}

func runReport(rootOpts *RootOptions, opts *ReportOptions, paths []string, cmd *cobra.Command) error {
	arch, err := analyzer.LookupArch(opts.Arch)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --arch", err)
	}

	var (
		reports []namedReport
		errs    []error
	)
	for _, path := range paths {
		loaded, err := loadReports(path, arch, opts.All)
		reports = append(reports, loaded...)
		if err != nil {
			var exitErr *ExitError
			if errors.As(err, &exitErr) {
				return exitErr
			}
			errs = append(errs, err)
		}
	}

	selected, err := selectReports(reports, opts.Types)
	if err != nil {
		if len(errs) > 0 {
			return WrapExitError(ExitFailure, err.Error(), errors.Join(errs...))
		}
		return err
	}

	rootOpts.Logger.Debug("rendering reports",
		zap.Int("count", len(selected)),
		zap.String("arch", arch.Name))

	formatter := NewOutputFormatter(rootOpts.Format, rootOpts.Color, cmd.OutOrStdout())
	if err := formatter.Reports(selected); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}

	if len(errs) > 0 {
		return WrapExitError(ExitFailure, "layout failed", errors.Join(errs...))
	}
	return nil
}

// loadReports computes the reports for one input file. Reports that
// succeeded are returned alongside the error for those that did not.
// Unreadable or unsupported files fail with an *ExitError.
func loadReports(path string, arch analyzer.Arch, all bool) ([]namedReport, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return loadSource(path, arch, all)
	case ".yaml", ".yml", ".json":
		return loadSpecFile(path)
	default:
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("unsupported input %s: expected .go, .yaml, .yml, or .json", path))
	}
}

func loadSource(path string, arch analyzer.Arch, all bool) ([]namedReport, error) {
	f, err := parser.ParseFile(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, WrapExitError(ExitCommandError, "read source", err)
		}
		return nil, err
	}

	layouts, err := analyzer.AnalyzeFile(f, analyzer.NewTypeRegistry(arch), all)

	reports := make([]namedReport, 0, len(layouts))
	for _, a := range layouts {
		reports = append(reports, namedReport{GoName: a.TypeName, Report: a.Report})
	}
	return reports, err
}

func loadSpecFile(path string) ([]namedReport, error) {
	specs, err := specfile.Load(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, WrapExitError(ExitCommandError, "read spec file", err)
		}
		return nil, err
	}

	var (
		reports []namedReport
		errs    []error
	)
	for _, spec := range specs {
		r, err := layout.Compute(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		reports = append(reports, namedReport{Report: r})
	}
	return reports, errors.Join(errs...)
}

// selectReports keeps the reports named in types, in input order. Every
// name must match at least one report.
func selectReports(reports []namedReport, types []string) ([]layout.Report, error) {
	var selected []layout.Report
	matched := make(map[string]bool)
	for _, n := range reports {
		if len(types) > 0 && !slices.ContainsFunc(types, n.matches) {
			continue
		}
		for _, name := range types {
			if n.matches(name) {
				matched[name] = true
			}
		}
		selected = append(selected, n.Report)
	}

	for _, name := range types {
		if !matched[name] {
			return nil, NewExitError(ExitFailure, fmt.Sprintf("type %q not found", name))
		}
	}
	return selected, nil
}
