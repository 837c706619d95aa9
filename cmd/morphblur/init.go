package main

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ivlev/morphblur/internal/director"
)

func newInitCmd() *cobra.Command {
	var (
		output    string
		input     string
		keyframes int
		fpk       int
		radius    float64
		intensity float64
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a template animation script",
		RunE: func(cmd *cobra.Command, args []string) error {
			anim, err := director.NewDirector(keyframes, fpk).Template(input, radius, intensity)
			if err != nil {
				return err
			}

			if output == "" {
				output = director.GenerateAnimationPath("animations")
			}
			// Убеждаемся, что директория существует
			if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
				return err
			}
			if err := director.WriteAnimation(anim, output); err != nil {
				return err
			}

			color.Green("[+++] Animation saved: %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default animations/animation_<timestamp>.yaml)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Source recorded in the script")
	cmd.Flags().IntVar(&keyframes, "keyframes", 5, "Number of keyframes")
	cmd.Flags().IntVar(&fpk, "frames-per-keyframe", 25, "Frames between two keyframes")
	cmd.Flags().Float64Var(&radius, "radius", 100, "Peak blur radius")
	cmd.Flags().Float64Var(&intensity, "intensity", 1, "Blur intensity at the peak")
	return cmd
}
