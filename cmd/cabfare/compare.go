package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cabfare/backend/internal/domain"
)

// Downtown San Francisco to SFO
var defaultTrip = domain.Trip{
	PickupLat:  37.7749,
	PickupLng:  -122.4194,
	DropoffLat: 37.6213,
	DropoffLng: -122.3790,
}

func addTripFlags(cmd *cobra.Command, trip *domain.Trip) {
	*trip = defaultTrip
	cmd.Flags().Float64Var(&trip.PickupLat, "pickup-lat", trip.PickupLat, "pickup latitude")
	cmd.Flags().Float64Var(&trip.PickupLng, "pickup-lng", trip.PickupLng, "pickup longitude")
	cmd.Flags().Float64Var(&trip.DropoffLat, "dropoff-lat", trip.DropoffLat, "dropoff latitude")
	cmd.Flags().Float64Var(&trip.DropoffLng, "dropoff-lng", trip.DropoffLng, "dropoff longitude")
}

func newCompareCmd(state *rootState) *cobra.Command {
	var (
		trip        domain.Trip
		withSummary bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare Uber and Lyft fares for a trip",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, state.cfg, state.logger, false)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			out := cmd.OutOrStdout()
			renderBanner(out)
			fmt.Fprintf(out, "\n🔍 Fetching fares from Uber and Lyft (%.4f,%.4f → %.4f,%.4f)...\n",
				trip.PickupLat, trip.PickupLng, trip.DropoffLat, trip.DropoffLng)

			result, err := a.comparisons.Compare(ctx, trip)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			renderComparison(out, result)

			if withSummary {
				fmt.Fprintln(out)
				fmt.Fprintln(out, rule)
				fmt.Fprintln(out, sectionStyle.Render("🤖 AI ASSISTANT SUMMARY"))
				fmt.Fprintln(out, rule)
				fmt.Fprintf(out, "\n%s\n", a.chat.Summarize(ctx, result))
			}

			fmt.Fprintln(out, rule)
			fmt.Fprintln(out, "✅ Comparison Complete!")
			fmt.Fprintln(out, rule)
			return nil
		},
	}

	addTripFlags(cmd, &trip)
	cmd.Flags().BoolVar(&withSummary, "summary", false, "ask the language model for a summary")
	return cmd
}
