package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/phrazzld/scent-api/internal/catalog"
	"github.com/spf13/cobra"
)

type catalogOptions struct {
	file     string
	category string
	asJSON   bool
}

func newCatalogCmd() *cobra.Command {
	opts := &catalogOptions{}
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.LoadOrDefault(opts.file)
			if err != nil {
				return err
			}
			products := c.Filter(opts.category)

			out := cmd.OutOrStdout()
			if opts.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(products)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tFAMILY\tPRICE\tRATING")
			for _, p := range products {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Family, p.Price.StringFixed(2), p.Rating)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&opts.file, "file", "", "YAML catalog file (default: built-in catalog)")
	cmd.Flags().StringVar(&opts.category, "category", "", "only list products of this family")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
