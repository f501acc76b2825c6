package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agenthands/clutch/internal/core"
)

func newPairCmd(opts *options) *cobra.Command {
	var (
		parentA, parentB string
		limit            int
		asJSON           bool
	)

	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Predict the offspring of two parents",
		Example: `  clutch pair --species ball_python --a "pastel, het clown" --b "66% het clown"
  clutch pair --species ball_python --a "super pastel" --b spider --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireSpecies(); err != nil {
				return err
			}
			b, err := opts.breeder()
			if err != nil {
				return err
			}
			ctx := context.Background()

			pa, err := b.ParseGenotype(ctx, opts.species, parentA)
			if err != nil {
				return err
			}
			pb, err := b.ParseGenotype(ctx, opts.species, parentB)
			if err != nil {
				return err
			}
			for _, u := range append(pa.Unresolved, pb.Unresolved...) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not place %q\n", u)
			}

			resp, err := b.Predict(ctx, core.PairingRequest{
				Species: opts.species,
				ParentA: pa.Genotype,
				ParentB: pb.Genotype,
				Limit:   &limit,
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			for _, w := range resp.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ODDS\tMORPH\tGENOTYPE")
			for _, r := range resp.Top {
				morph := strings.Join(r.DisplayTokens, " ")
				if morph == "" {
					morph = "Normal"
				}
				if r.Invalid {
					morph += " (incompatible)"
				}
				fmt.Fprintf(tw, "%6.2f%%\t%s\t%s\n", r.Probability*100, morph, r.Summary)
			}
			if resp.Remainder > 0 {
				fmt.Fprintf(tw, "%6.2f%%\t(other outcomes)\t\n", resp.Remainder*100)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&parentA, "a", "", "First parent, e.g. \"pastel, het clown\"")
	cmd.Flags().StringVar(&parentB, "b", "", "Second parent")
	cmd.Flags().IntVar(&limit, "limit", 20, "Rows to show; 0 shows all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full response as JSON")

	return cmd
}
