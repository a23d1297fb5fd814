package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/places-microservice/internal/usecase/dto"
)

func newNearbyCmd(opts *globalOptions) *cobra.Command {
	var (
		lat, lon   float64
		radius     int
		categories []string
		provider   string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List places around a point",
		Example: `  placesctl nearby --lat 37.7749 --lon -122.4194 --categories cafe,library
  placesctl nearby --lat 52.52 --lon 13.405 --radius 3000 --provider google -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.open()
			if err != nil {
				return err
			}
			defer deps.Close()

			req := dto.NearbyPlacesRequest{
				RadiusMeters: radius,
				Categories:   categories,
				Provider:     provider,
				Limit:        limit,
			}
			if cmd.Flags().Changed("lat") {
				req.Lat = &lat
			}
			if cmd.Flags().Changed("lon") {
				req.Lon = &lon
			}

			result, err := deps.Places.SearchNearby(cmd.Context(), req)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), opts.output, result, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "# %d places from %s (%s, %dm, %v)\n",
					result.Total, result.Source, result.Provider, result.RadiusMeters, result.Categories)
				if result.Truncated {
					fmt.Fprintf(w, "# showing first %d\n", len(result.Places))
				}
				fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tDISTANCE\tMAPS")
				for _, p := range result.Places {
					fmt.Fprintf(w, "%s\t%s\t%s\t%.0fm\t%s\n", p.ID, p.Name, p.Category, p.DistanceMeters, p.MapsURL)
				}
			})
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "center latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "center longitude")
	cmd.Flags().IntVarP(&radius, "radius", "r", 0, "search radius in meters (default PLACES_DEFAULT_RADIUS)")
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "categories to show (cafe,library,coworking_space,other)")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "provider (osm|google, default PLACES_PROVIDER)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max places to print")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}
