package main

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/morphblur/internal/config"
	"github.com/ivlev/morphblur/internal/system"
)

// bindRenderFlags registers the flags shared by render and blur.
func bindRenderFlags(cmd *cobra.Command, f *config.Flags) {
	cmd.Flags().StringVarP(&f.InputPath, "input", "i", "", "Image, image directory, PDF or qr:<text> (default: newest image in input/)")
	cmd.Flags().IntVar(&f.Width, "width", 0, "Frame width (0 keeps the source size)")
	cmd.Flags().IntVar(&f.Height, "height", 0, "Frame height (0 keeps the source size)")
	cmd.Flags().IntVar(&f.DPI, "dpi", 0, "DPI for PDF pages and QR cards (default 150)")
	cmd.Flags().IntVar(&f.Page, "page", 0, "Page of the source to use")
	cmd.Flags().IntVarP(&f.Workers, "workers", "w", 0, "Parallel workers (default from CPU count and free memory)")
	cmd.Flags().Float64Var(&f.Radius, "radius", 0, "Blur radius in thousandths of (width+height) (default 100)")
	cmd.Flags().Float64Var(&f.Intensity, "intensity", 0, "Blur intensity, must be positive (default 1)")
	cmd.Flags().BoolVar(&f.ShowStats, "stats", false, "Print a performance report and append it to benchmark.log")
}

// loadConfig merges the config file, flags and defaults.
func loadConfig(f config.Flags) (*config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.Resolve(f, system.Probe())
	cfg.BuildVersion = BuildVersion
	return &cfg, nil
}
