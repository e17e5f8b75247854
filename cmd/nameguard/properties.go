package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errReadOnlyIndex rejects write commands when the configured index
// provider is an external API.
var errReadOnlyIndex = errors.New("the configured index provider is read-only (set index.provider to sqlite or qdrant)")

func newPropertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Manage the local property index",
	}

	cmd.AddCommand(
		newPropertiesInitCmd(),
		newPropertiesImportCmd(),
		newPropertiesNearCmd(),
	)

	return cmd
}

func newPropertiesInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Prepare the property index schema or collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if d.PropertiesHandler == nil {
					return errReadOnlyIndex
				}
				if err := d.PropertiesHandler.Init(cmd.Context()); err != nil {
					return fmt.Errorf("initializing property index: %w", err)
				}
				fmt.Println("Property index initialized.")
				return nil
			})
		},
	}
}

func newPropertiesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import geocoded properties from a CSV file",
		Long:  "Loads properties into the local index. Expected columns: name, lat, lon and optionally id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if d.PropertiesHandler == nil {
					return errReadOnlyIndex
				}

				result, err := d.PropertiesHandler.Import(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("importing properties: %w", err)
				}

				fmt.Printf("Imported %d properties", result.Imported)
				if result.Skipped > 0 {
					fmt.Printf(" (%d rows skipped)", result.Skipped)
				}
				fmt.Printf(", index now holds %d.\n", result.Total)
				return nil
			})
		},
	}
}

func newPropertiesNearCmd() *cobra.Command {
	var (
		lat    float64
		lon    float64
		radius float64
	)

	cmd := &cobra.Command{
		Use:   "near",
		Short: "List indexed properties near a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
				return fmt.Errorf("both --lat and --lon are required")
			}

			return withDeps(cmd.Context(), func(d *Deps) error {
				if radius <= 0 {
					radius = d.Config.Validation.RadiusMeters
				}

				if d.PropertiesHandler == nil {
					return errReadOnlyIndex
				}

				props, err := d.PropertiesHandler.Near(cmd.Context(), lat, lon, radius)
				if err != nil {
					return fmt.Errorf("querying properties: %w", err)
				}

				if len(props) == 0 {
					fmt.Printf("No properties within %.0fm.\n", radius)
					return nil
				}

				fmt.Printf("Found %d properties within %.0fm:\n\n", len(props), radius)
				for i, p := range props {
					fmt.Printf("%d. %s (%.0fm away)\n", i+1, p.Name, p.DistanceMeters)
				}
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude of the search center")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude of the search center")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "Search radius in meters (default from config)")

	return cmd
}
