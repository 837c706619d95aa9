package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ivlev/morphblur/internal/config"
	"github.com/ivlev/morphblur/internal/effects"
	"github.com/ivlev/morphblur/internal/engine"
	"github.com/ivlev/morphblur/internal/frames"
	"github.com/ivlev/morphblur/internal/progress"
	"github.com/ivlev/morphblur/internal/source"
	"github.com/ivlev/morphblur/internal/system"
)

func newBlurCmd() *cobra.Command {
	var f config.Flags

	cmd := &cobra.Command{
		Use:   "blur <output>",
		Short: "Apply one HDR blur pass to a single image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlur(cmd, f, args[0])
		},
	}
	bindRenderFlags(cmd, &f)
	return cmd
}

func runBlur(cmd *cobra.Command, f config.Flags, output string) error {
	log := logrus.WithField("cmd", "blur")

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	if cfg.InputPath == "" {
		latest, err := system.FindLatestImage("input")
		if err != nil {
			return fmt.Errorf("%v, put an image into input/ or pass --input", err)
		}
		cfg.InputPath = latest
		log.Infof("[*] Selected file: %s", cfg.InputPath)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := frames.FormatOf(output); err != nil {
		return err
	}

	src, err := source.Open(cfg.InputPath)
	if err != nil {
		return err
	}
	defer src.Close()

	img, err := src.RenderPage(cfg.Page, cfg.DPI)
	if err != nil {
		return err
	}
	img = source.Fit(img, cfg.Width, cfg.Height)

	log.WithFields(logrus.Fields{"radius": cfg.Radius, "intensity": cfg.Intensity}).Info("[*] Blurring")
	out, err := engine.BlurImage(cmd.Context(), img, cfg.Radius, cfg.Intensity,
		effects.WithWorkers(cfg.Workers),
		effects.WithProgress(progress.LogSink{Log: log}),
	)
	if errors.Is(err, context.Canceled) {
		color.Yellow("[!] Cancelled, nothing written")
		return nil
	}
	if err != nil {
		return err
	}

	if err := frames.WriteFile(output, out); err != nil {
		return err
	}
	color.Green("[+++] Saved: %s", output)
	return nil
}
