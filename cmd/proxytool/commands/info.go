package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Faultbox/controlshape/pkg/geom"
)

func (c *CLI) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <mesh.obj>",
		Short: "Show mesh statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadOBJ(args[0])
			if err != nil {
				return err
			}

			b := geom.Empty()
			for v := 0; v < m.NumVertices(); v++ {
				b.Expand(m.Point(v))
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "mesh:      %s\n", args[0])
			fmt.Fprintf(w, "vertices:  %d\n", m.NumVertices())
			fmt.Fprintf(w, "faces:     %d\n", m.NumFaces())
			fmt.Fprintf(w, "triangles: %d\n", m.NumTriangles())
			fmt.Fprintf(w, "bounds:    %s\n", formatBounds(b))

			hist := m.ArityHistogram()
			arities := make([]int, 0, len(hist))
			for n := range hist {
				arities = append(arities, n)
			}
			slices.Sort(arities)
			for _, n := range arities {
				fmt.Fprintf(w, "  %d-gons:  %d\n", n, hist[n])
			}
			return nil
		},
	}
}
