package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/parcelworks/nameguard/internal/application/handlers"
	"github.com/parcelworks/nameguard/internal/domain/entities"
)

func newValidateCmd() *cobra.Command {
	var (
		locale     string
		lat        float64
		lon        float64
		address    string
		radius     float64
		timeoutSec int
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "validate <name>",
		Short: "Validate a proposed property name",
		Long: "Screens the name against the profanity, cultural, slang and phonetic checks.\n" +
			"When a location (--lat/--lon or --address) is given, also checks for\n" +
			"near-duplicate property names within the radius.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], locale, address, radius, timeoutSec, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "", "Locale for lexicon matching (default from config)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude of the proposed property")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude of the proposed property")
	cmd.Flags().StringVarP(&address, "address", "a", "", "Street address to geocode instead of coordinates")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "Duplicate search radius in meters (default from config)")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "Geo lookup timeout in seconds (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the report as JSON")

	return cmd
}

func runValidate(cmd *cobra.Command, name, locale, address string, radius float64, timeoutSec int, jsonOut bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		if locale == "" {
			locale = d.Config.Validation.Locale
		}
		if radius <= 0 {
			radius = d.Config.Validation.RadiusMeters
		}
		if timeoutSec <= 0 {
			timeoutSec = d.Config.Validation.TimeoutSeconds
		}

		var location *entities.Location
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
			if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
				return fmt.Errorf("both --lat and --lon are required for a coordinate lookup")
			}
			latVal, err := cmd.Flags().GetFloat64("lat")
			if err != nil {
				return err
			}
			lonVal, err := cmd.Flags().GetFloat64("lon")
			if err != nil {
				return err
			}
			location = &entities.Location{Lat: latVal, Lon: lonVal}
		}

		report, err := d.ValidateHandler.Handle(ctx, name, handlers.ValidateOptions{
			Locale:       locale,
			Location:     location,
			Address:      address,
			RadiusMeters: radius,
			Timeout:      time.Duration(timeoutSec) * time.Second,
		})
		if err != nil {
			return err
		}

		if jsonOut {
			if err := d.ValidateHandler.RenderJSON(os.Stdout, report); err != nil {
				return err
			}
		} else {
			d.ValidateHandler.RenderText(os.Stdout, report)
		}

		if !report.OverallPass {
			cmd.SilenceUsage = true
			return fmt.Errorf("name %q failed validation", name)
		}
		return nil
	})
}
