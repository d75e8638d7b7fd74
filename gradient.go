package main

import (
	"github.com/spf13/cobra"

	"github.com/df07/go-weekend-raytracer/pkg/output"
)

func newGradientCmd() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "gradient",
		Short: "Write the PPM gradient test pattern to stdout",
		Long:  "Write a red/green gradient with no scene or gamma, useful for checking that a viewer reads P3 files.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return output.WriteGradientPPM(cmd.OutOrStdout(), width, height)
		},
	}

	cmd.Flags().IntVar(&width, "width", 256, "image width")
	cmd.Flags().IntVar(&height, "height", 256, "image height")
	return cmd
}
