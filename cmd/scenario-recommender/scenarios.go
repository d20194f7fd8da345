package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newScenariosCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenario catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := c.cfg.Catalog()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tHAPPY\tANGRY\tSAD\tCALM")
			for _, sc := range catalog.Scenarios() {
				v := sc.Vector
				fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\n", sc.Key, sc.Name, v[0], v[1], v[2], v[3])
			}
			return tw.Flush()
		},
	}
}
