package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newGenesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "genes",
		Short: "List the genes of a species, or the species when none is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.breeder()
			if err != nil {
				return err
			}
			ctx := context.Background()
			out := cmd.OutOrStdout()

			if opts.species == "" {
				species, err := b.Species(ctx)
				if err != nil {
					return err
				}
				for _, s := range species {
					fmt.Fprintln(out, s)
				}
				return nil
			}

			genes, warnings, err := b.Genes(ctx, opts.species)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tMODE\tINCOMPATIBLE")
			for _, g := range genes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.Key, g.Name, g.Mode, strings.Join(g.IncompatibleWith, ","))
			}
			return tw.Flush()
		},
	}
}
