package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexhholmes/typelayout/internal/analyzer"
	"github.com/alexhholmes/typelayout/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
	Color      string // "auto" | "always" | "never"
	ConfigPath string

	// Set before a subcommand runs
	Config config.Config
	Logger *zap.Logger
}

// NewRootCommand creates the root command for the typelayout CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{
		Config: config.Default(),
		Logger: zap.NewNop(),
	}

	cmd := &cobra.Command{
		Use:   "typelayout",
		Short: "Report the C memory layout of struct types",
		Long: `typelayout computes the sequential C layout of structures: total size,
alignment, and each field's offset and size, with the padding inserted
between and after fields.

Structures come from Go source files (struct types annotated with a
"// @layout" comment) or from YAML/JSON spec files listing field sizes
and alignments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "auto", "style text output (auto|always|never)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default "+config.DefaultFile+" if present)")

	// Add subcommands
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewArchesCommand(opts))

	return cmd
}

// setup loads the config file, applies it to flags that were not set on
// the command line, and builds the logger.
func (opts *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("format") {
		opts.Format = cfg.Format
	}
	if !flags.Changed("color") {
		opts.Color = cfg.Color
	}

	if !slices.Contains(config.ValidFormats, opts.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, config.ValidFormats))
	}
	if !slices.Contains(config.ValidColors, opts.Color) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid color %q: must be one of %v", opts.Color, config.ValidColors))
	}

	opts.Config = cfg
	opts.Logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
	analyzer.SetLogger(opts.Logger.Named("analyzer"))

	opts.Logger.Debug("configuration loaded",
		zap.String("arch", cfg.Arch),
		zap.String("format", opts.Format),
		zap.String("color", opts.Color))
	return nil
}

// newLogger builds a console logger on w. Only warnings and errors are
// shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}
