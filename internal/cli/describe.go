package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	isatty "github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jask/wineboard/internal/charts"
	"github.com/jask/wineboard/internal/stats"
)

const (
	datasetWine     = "wine"
	datasetPairings = "pairings"
)

var describeWidth int

var describeCmd = &cobra.Command{
	Use:   "describe [wine|pairings]",
	Short: "Print summary statistics for the datasets",
	Long: `Print count, mean, std, min, quartiles and max for every numeric column.

Without an argument both datasets are described. Output is coloured only
when stdout is a terminal and NO_COLOR is unset.`,
	Example: `  wineboard describe
  wineboard describe pairings --width 80`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{datasetWine, datasetPairings},
	RunE:      runDescribe,
}

func init() {
	describeCmd.Flags().IntVar(&describeWidth, "width", 100, "table width in columns")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if describeWidth <= 0 {
		return fmt.Errorf("invalid width: %d (must be positive)", describeWidth)
	}
	out := cmd.OutOrStdout()
	if !useColor(out) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	which := []string{datasetWine, datasetPairings}
	if len(args) == 1 {
		which = args
	}

	_, wine, pairings := newServices(cfg)
	defer pairings.Close()

	ctx := cmd.Context()
	var errs []error
	for i, name := range which {
		var (
			title     string
			summaries []stats.Summary
		)
		switch name {
		case datasetWine:
			ov, err := wine.Overview(ctx)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			title, summaries = "Red wine quality", ov.Summary
		case datasetPairings:
			ov, err := pairings.Overview(ctx)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			title, summaries = "Wine & food pairing", stats.Describe(ov.Table)
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, lipgloss.NewStyle().Bold(true).Render(title))
		fmt.Fprintln(out, charts.Describe(summaries, describeWidth))
	}
	return errors.Join(errs...)
}

// useColor reports whether w is a terminal that accepts colour.
func useColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
