package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/wineboard/internal/export"
)

var (
	exportOut     string
	exportFeature string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every dashboard chart as a PNG file",
	Long: `Render the charts of both dashboards to PNG files.

The scatter chart uses --feature, or the first numeric feature when unset.
A dataset that fails to load is reported and the other one is still exported.`,
	Example: `  wineboard export
  wineboard export --out /tmp/charts --feature alcohol`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (default: export.dir)")
	exportCmd.Flags().StringVar(&exportFeature, "feature", "", "feature plotted against quality")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	dir := exportOut
	if dir == "" {
		dir = cfg.Export.Dir
	}
	ex := export.Exporter{Dir: dir, Width: cfg.Export.Width, Height: cfg.Export.Height}

	_, wine, pairings := newServices(cfg)
	defer pairings.Close()

	var written []string
	var errs []error

	if ov, err := wine.Overview(ctx); err != nil {
		errs = append(errs, err)
	} else {
		feature := exportFeature
		if feature == "" && len(ov.Features) > 0 {
			feature = ov.Features[0]
		}
		sc, err := wine.Scatter(ctx, feature)
		if err != nil {
			errs = append(errs, err)
		} else {
			paths, err := ex.WineQuality(ctx, ov, sc)
			written = append(written, paths...)
			if err != nil {
				errs = append(errs, err)
			}
		}
	}

	if ov, err := pairings.Overview(ctx); err != nil {
		errs = append(errs, err)
	} else {
		paths, err := ex.Pairing(ctx, ov)
		written = append(written, paths...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	for _, p := range written {
		fmt.Fprintln(out, p)
	}
	fmt.Fprintf(out, "%d charts written to %s\n", len(written), dir)
	return errors.Join(errs...)
}
