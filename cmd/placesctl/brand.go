package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newBrandCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "brand <wikidata-id>",
		Short:   "Resolve a brand image URL from Wikidata",
		Example: "  placesctl brand Q37158",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.open()
			if err != nil {
				return err
			}
			defer deps.Close()

			image, err := deps.Brands.GetBrandImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), opts.output, image, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "%s\t%s\n", image.WikidataID, image.URL)
			})
		},
	}
}
