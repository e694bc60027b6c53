package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/alexhholmes/typelayout/internal/analyzer"
)

// ArchInfo describes one supported architecture in command output.
type ArchInfo struct {
	Name     string   `json:"name" yaml:"name"`
	WordSize uint64   `json:"word_size" yaml:"word_size"`
	MaxAlign uint64   `json:"max_align" yaml:"max_align"`
	Family   []string `json:"family" yaml:"family"`
}

// NewArchesCommand creates the arches command.
func NewArchesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "arches",
		Short:         "List supported target architectures",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArches(rootOpts, cmd)
		},
	}
}

func runArches(rootOpts *RootOptions, cmd *cobra.Command) error {
	var infos []ArchInfo
	for _, a := range analyzer.Arches() {
		infos = append(infos, ArchInfo{
			Name:     a.Name,
			WordSize: a.WordSize,
			MaxAlign: a.MaxAlign,
			Family:   a.Family(),
		})
	}

	formatter := NewOutputFormatter(rootOpts.Format, rootOpts.Color, cmd.OutOrStdout())
	if formatter.Format != "text" {
		return formatter.encode(infos)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ARCH", "WORD SIZE", "MAX ALIGN", "SAME LAYOUT AS")
	for _, info := range infos {
		t.Row(
			info.Name,
			strconv.FormatUint(info.WordSize, 10),
			strconv.FormatUint(info.MaxAlign, 10),
			strings.Join(info.Family, " "),
		)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return err
}
