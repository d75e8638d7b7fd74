package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

func newScenesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := scene.ListSceneFiles(a.v.GetString("scenesDir"))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tDESCRIPTION")
			for _, info := range append(scene.List(), files...) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.ID, info.Type, info.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().String("scenes-dir", "scenes", "directory scanned for scene files")
	bindFlags(a.v, cmd.Flags(), map[string]string{"scenes-dir": "scenesDir"})
	return cmd
}
