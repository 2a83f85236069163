package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecarion/voltroute/app"
	"github.com/ecarion/voltroute/config"
	"github.com/ecarion/voltroute/core/model"
)

var stationFlags struct {
	lat, lon float64
	radiusKm float64
}

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List charging stations near a location",
	RunE:  runStations,
}

func init() {
	stationsCmd.Flags().Float64Var(&stationFlags.lat, "lat", 0, "latitude")
	stationsCmd.Flags().Float64Var(&stationFlags.lon, "lon", 0, "longitude")
	stationsCmd.Flags().Float64Var(&stationFlags.radiusKm, "radius", 50, "search radius in km")
	_ = stationsCmd.MarkFlagRequired("lat")
	_ = stationsCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	center := model.Coordinate{Lat: stationFlags.lat, Lon: stationFlags.lon}
	if err := center.Validate(); err != nil {
		return err
	}

	hits := svc.Catalog.WithinRadius(center, stationFlags.radiusKm)
	if len(hits) == 0 {
		fmt.Printf("no stations within %.0f km\n", stationFlags.radiusKm)
		return nil
	}
	for _, st := range hits {
		fmt.Printf("%-10s %-28s %-12s %6.0f kW  %.2f/kWh  %.1f km\n",
			st.ID, st.Name, st.City, st.PowerKW, st.PricePerKWh, model.Distance(center, st.Location))
	}
	return nil
}
