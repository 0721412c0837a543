package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newDeriveCmd() *cobra.Command {
	var f shapeFlags
	cmd := &cobra.Command{
		Use:   "derive [mesh.obj]",
		Short: "Derive a proxy shell and print its statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, name, err := f.loadMesh(args)
			if err != nil {
				return err
			}
			s, host, err := f.shape(ref, name)
			if err != nil {
				return err
			}
			g, err := s.Geometry(host)
			if err != nil {
				return err
			}
			printGeometry(cmd.OutOrStdout(), name, g)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
