package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ivlev/morphblur/internal/config"
	"github.com/ivlev/morphblur/internal/director"
	"github.com/ivlev/morphblur/internal/engine"
	"github.com/ivlev/morphblur/internal/frames"
	"github.com/ivlev/morphblur/internal/source"
	"github.com/ivlev/morphblur/internal/system"
)

func newRenderCmd() *cobra.Command {
	var f config.Flags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an animation script into a numbered frame sequence",
		Long: `Render interpolates every track of the animation script for every frame and
applies the HDR blur with the animated radius and intensity to the source page.

Without --animation a template animation is generated from --radius and --intensity.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, f)
		},
	}

	bindRenderFlags(cmd, &f)
	cmd.Flags().StringVarP(&f.AnimationPath, "animation", "a", "", "Animation script (YAML)")
	cmd.Flags().StringVarP(&f.OutputDir, "output", "o", "", "Output directory for frames (default frames/)")
	cmd.Flags().StringVar(&f.Format, "format", "", "Frame format: png, bmp, tiff, webp")
	cmd.Flags().StringVar(&f.Clamp, "clamp", "", "Catmull-Rom overflow clamp: reference or symmetric")

	return cmd
}

func runRender(cmd *cobra.Command, f config.Flags) error {
	log := logrus.WithField("cmd", "render")

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	var anim *director.Animation
	if cfg.AnimationPath != "" {
		anim, err = director.ReadAnimation(cfg.AnimationPath)
		if err != nil {
			return err
		}
		log.Infof("[*] Using animation: %s", cfg.AnimationPath)
	}

	if cfg.InputPath == "" && anim != nil {
		cfg.InputPath = anim.Source
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

	if anim == nil {
		anim, err = director.NewDirector(cfg.Keyframes, cfg.FramesPerKeyframe).Template(cfg.InputPath, cfg.Radius, cfg.Intensity)
		if err != nil {
			return err
		}
		log.Info("[*] No animation given, using the template")
	}

	src, err := source.Open(cfg.InputPath)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := frames.NewWriter(cfg.OutputDir, cfg.Format)
	if err != nil {
		return err
	}

	stats, err := engine.NewProject(cfg, src, anim, w, log).Run(cmd.Context())
	if err != nil {
		return err
	}

	if stats.Cancelled {
		color.Yellow("[!] Cancelled: %d of %d frames written to %s", stats.Written, stats.Frames, cfg.OutputDir)
		return nil
	}
	color.Green("[+++] Done! %d frames written to %s in %.2fs", stats.Written, cfg.OutputDir, stats.Total.Seconds())
	return nil
}
