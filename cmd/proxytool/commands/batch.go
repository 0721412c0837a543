package commands

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/controlshape/internal/logger"
	"github.com/Faultbox/controlshape/internal/proxy"
	"github.com/Faultbox/controlshape/internal/registry"
	"github.com/Faultbox/controlshape/internal/scene"
)

func (c *CLI) newBatchCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch <scene.yaml>",
		Short: "Derive every shape of a scene concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = c.cfg.Derive.Workers
			}
			if workers <= 0 {
				workers = runtime.NumCPU()
			}

			sc, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			reg := registry.New(logger.Named("registry"))
			if err := registry.Initialize(reg); err != nil {
				return err
			}
			defer registry.Uninitialize(reg)

			entries, err := sc.Build(reg, proxy.DefaultColor, logger.Named("shape"))
			if err != nil {
				return err
			}

			// Each goroutine owns one entry; meshes are shared read-only.
			results := make([]proxy.Geometry, len(entries))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(workers)
			for i, e := range entries {
				i, e := i, e
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					geo, err := e.Shape.Geometry(e.Host)
					if err != nil {
						return fmt.Errorf("%s: %w", e.Shape.Name(), err)
					}
					results[i] = geo
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			logger.Debug("batch derived", zap.Int("shapes", len(entries)), zap.Int("workers", workers))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SHAPE\tTRIANGLES\tSKIPPED\tBOUNDS\tFINGERPRINT")
			for i, e := range entries {
				geo := results[i]
				skipped := "-"
				if geo.Skipped.Any() {
					s := geo.Skipped
					skipped = fmt.Sprintf("%d/%d/%d", s.InvalidFaces, s.UnsupportedFaces, s.InvalidTriangles)
					if s.SingularWorld {
						skipped += " singular"
					}
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%016x\n",
					e.Shape.Name(), geo.TriangleCount(), skipped, formatBounds(geo.Bounds), geo.Fingerprint())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Concurrent derivations (default from config, else one per CPU)")
	return cmd
}
