package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecarion/voltroute/app"
	"github.com/ecarion/voltroute/config"
	"github.com/ecarion/voltroute/core/model"
	"github.com/ecarion/voltroute/core/planner"
)

var planFlags struct {
	startLat, startLon float64
	destLat, destLon   float64
	vehicle            string
	battery            float64
	perSegment         bool
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a one-shot route plan and print it as JSON",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().Float64Var(&planFlags.startLat, "start-lat", 0, "start latitude")
	planCmd.Flags().Float64Var(&planFlags.startLon, "start-lon", 0, "start longitude")
	planCmd.Flags().Float64Var(&planFlags.destLat, "dest-lat", 0, "destination latitude")
	planCmd.Flags().Float64Var(&planFlags.destLon, "dest-lon", 0, "destination longitude")
	planCmd.Flags().StringVar(&planFlags.vehicle, "vehicle", "", "vehicle id or name")
	planCmd.Flags().Float64Var(&planFlags.battery, "battery", 90, "current battery percent")
	planCmd.Flags().BoolVar(&planFlags.perSegment, "per-segment", false, "use per-segment energy analysis")
	for _, f := range []string{"start-lat", "start-lon", "dest-lat", "dest-lon", "vehicle"} {
		_ = planCmd.MarkFlagRequired(f)
	}
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	vehicle, err := svc.Vehicles.Resolve(planFlags.vehicle)
	if err != nil {
		return err
	}

	req := planner.Request{
		Start:                 model.Coordinate{Lat: planFlags.startLat, Lon: planFlags.startLon},
		Destination:           model.Coordinate{Lat: planFlags.destLat, Lon: planFlags.destLon},
		Vehicle:               vehicle,
		CurrentBatteryPercent: planFlags.battery,
		PerSegment:            planFlags.perSegment,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	res := svc.Planner.PlanStops(context.Background(), req)
	plan := planner.BuildPlan(req, res, nil)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
