package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLexiconsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicons",
		Short: "Inspect the loaded wordlists",
	}

	cmd.AddCommand(newLexiconsListCmd())

	return cmd
}

func newLexiconsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List loaded lexicon entries by category and locale",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				summaries := d.LexiconsHandler.Summarize()
				if len(summaries) == 0 {
					fmt.Println("No lexicon entries loaded.")
					return nil
				}

				fmt.Printf("%-22s %-8s %s\n", "CATEGORY", "LOCALE", "ENTRIES")
				for _, s := range summaries {
					locale := s.Locale
					if locale == "" {
						locale = "(all)"
					}
					fmt.Printf("%-22s %-8s %d\n", s.Category, locale, s.Count)
				}
				fmt.Printf("\nTotal: %d entries\n", d.LexiconsHandler.Total())
				return nil
			})
		},
	}
}
