package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faultbox/controlshape/pkg/formats"
)

func (c *CLI) newExportCmd() *cobra.Command {
	var (
		f   shapeFlags
		out string
	)
	cmd := &cobra.Command{
		Use:   "export [mesh.obj]",
		Short: "Write the proxy shell as an OBJ file",
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

			objName := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)) + "_proxy"
			if out == "" || out == "-" {
				return formats.WriteTriangles(cmd.OutOrStdout(), objName, g.Points)
			}

			file, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := formats.WriteTriangles(file, objName, g.Points); err != nil {
				file.Close()
				return fmt.Errorf("writing %s: %w", out, err)
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d triangles to %s\n", g.TriangleCount(), out)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default stdout)")
	return cmd
}
