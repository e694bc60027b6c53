package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexhholmes/typelayout/internal/analyzer"
	"github.com/alexhholmes/typelayout/internal/codegen"
	"github.com/alexhholmes/typelayout/internal/parser"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	Output  string
	Arch    string
	Package string
	Method  string
	All     bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <file.go>",
		Short: "Generate layout report methods and compile-time layout checks",
		Long: `Generate a Go file that gives each @layout annotated type a method
returning its layout report, plus constant-index assertions that stop
compilation if gc lays the type out differently.

The output defaults to <file>_layout.go next to the input and carries a
build constraint for the architectures that share the target's sizes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("arch") {
				opts.Arch = rootOpts.Config.Arch
			}
			if !cmd.Flags().Changed("all") {
				opts.All = rootOpts.Config.All
			}
			return runGenerate(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file, - for stdout (default <file>_layout.go)")
	cmd.Flags().StringVar(&opts.Arch, "arch", "", "target GOARCH (default from config or host)")
	cmd.Flags().StringVar(&opts.Package, "package", "", "package name of the generated file (default the input's)")
	cmd.Flags().StringVar(&opts.Method, "method", codegen.DefaultMethod, "name of the generated report method")
	cmd.Flags().BoolVar(&opts.All, "all", false, "generate for every struct type, not only annotated ones")

	return cmd
}

func runGenerate(rootOpts *RootOptions, opts *GenerateOptions, path string, cmd *cobra.Command) error {
	arch, err := analyzer.LookupArch(opts.Arch)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --arch", err)
	}

	f, err := parser.ParseFile(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return WrapExitError(ExitCommandError, "read source", err)
		}
		return WrapExitError(ExitFailure, "parse source", err)
	}

	layouts, err := analyzer.AnalyzeFile(f, analyzer.NewTypeRegistry(arch), opts.All)
	if err != nil {
		return WrapExitError(ExitFailure, "layout failed", err)
	}
	if len(layouts) == 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("no @layout types in %s", path))
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = f.Package
	}

	gen := codegen.NewGenerator(pkg, arch, layouts, rootOpts.Logger.Named("codegen"))
	gen.SetMethod(opts.Method)
	code, err := gen.Generate()
	if err != nil {
		return WrapExitError(ExitFailure, "generate", err)
	}

	output := opts.Output
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + "_layout.go"
	}

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(code)
		return err
	}

	if err := os.WriteFile(output, code, 0644); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}

	rootOpts.Logger.Info("generated layout code",
		zap.String("output", output),
		zap.String("arch", arch.Name),
		zap.Int("types", len(layouts)))
	return nil
}
