package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newETACmd(state *rootState) *cobra.Command {
	lat, lng := defaultTrip.PickupLat, defaultTrip.PickupLng

	cmd := &cobra.Command{
		Use:   "eta",
		Short: "Show pickup ETAs from both providers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, state.cfg, state.logger, false)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			etas, err := a.comparisons.PickupETAs(ctx, lat, lng)
			if err != nil {
				return fmt.Errorf("eta lookup failed: %w", err)
			}
			renderETAs(cmd.OutOrStdout(), etas)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", lat, "pickup latitude")
	cmd.Flags().Float64Var(&lng, "lng", lng, "pickup longitude")
	return cmd
}
