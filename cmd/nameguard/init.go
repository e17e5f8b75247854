package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parcelworks/nameguard/internal/infrastructure/config"
	"github.com/parcelworks/nameguard/internal/infrastructure/lexicons"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a nameguard workspace",
		Long:  "Creates a .nameguard directory with default configuration and an empty lexicons directory.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("nameguard already initialized in %s", cwd)
	}

	if err := config.WriteDefault(cwd); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	lexiconPath, err := lexicons.WriteDefault(cfg.LexiconsDir(cwd))
	if err != nil {
		return fmt.Errorf("seeding default lexicon: %w", err)
	}
	fmt.Printf("Created %s\n", lexiconPath)

	fmt.Println("Nameguard initialized. Add lexicon files (CSV or JSON) alongside the default,")
	fmt.Println("then run 'nameguard properties init' to prepare the property index.")

	return nil
}
