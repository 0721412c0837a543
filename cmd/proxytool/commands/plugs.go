package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/controlshape/internal/proxy"
)

func (c *CLI) newPlugsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugs [name...]",
		Short: "List shape attributes and whether they invalidate draw data",
		RunE: func(cmd *cobra.Command, args []string) error {
			plugs := proxy.Plugs()
			if len(args) > 0 {
				plugs = plugs[:0:0]
				for _, name := range args {
					p, ok := proxy.ParsePlug(name)
					if !ok {
						return fmt.Errorf("unknown plug %q", name)
					}
					plugs = append(plugs, p)
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PLUG\tPARENT\tDIRTIES DRAW")
			for _, p := range plugs {
				parent := "-"
				if pp := p.Parent(); pp != proxy.PlugNone {
					parent = pp.String()
				}
				fmt.Fprintf(tw, "%s\t%s\t%t\n", p, parent, p.AffectsDraw())
			}
			return tw.Flush()
		},
	}
}
