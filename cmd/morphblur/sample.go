package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/morphblur/internal/director"
	"github.com/ivlev/morphblur/internal/morph"
	"github.com/ivlev/morphblur/internal/renderer"
)

func newSampleCmd() *cobra.Command {
	var (
		from, to  int
		symmetric bool
	)

	cmd := &cobra.Command{
		Use:   "sample <animation.yaml>",
		Short: "Print interpolated track values for a range of frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anim, err := director.ReadAnimation(args[0])
			if err != nil {
				return err
			}

			policy := morph.ClampReference
			if symmetric {
				policy = morph.ClampSymmetric
			}
			seq, err := renderer.NewSequencer(anim, morph.WithClampPolicy(policy))
			if err != nil {
				return err
			}

			if to <= 0 || to > seq.TotalFrames() {
				to = seq.TotalFrames()
			}
			states, err := seq.Frames(from, to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, st := range states {
				names := make([]string, 0, len(st.Values))
				for name := range st.Values {
					names = append(names, name)
				}
				sort.Strings(names)

				parts := make([]string, len(names))
				for i, name := range names {
					parts[i] = fmt.Sprintf("%s=%s", name, st.Values[name])
				}
				fmt.Fprintf(out, "%5d  key=%d factor=%.3f  %s\n", st.Frame, st.Keyframe, st.Factor, strings.Join(parts, " "))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "First frame")
	cmd.Flags().IntVar(&to, "to", 0, "Frame after the last one (default: all frames)")
	cmd.Flags().BoolVar(&symmetric, "symmetric-clamp", false, "Clamp large negative Catmull-Rom results to -1e20")
	return cmd
}
