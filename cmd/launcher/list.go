package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/launcher/internal/category"
)

type listing struct {
	Key     string           `json:"key"`
	Name    string           `json:"name"`
	Entries []category.Entry `json:"entries"`
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [module...]",
		Short: "Show the name and entries of categories",
		Long: `List loads each module given on the command line, or every category in the
manifest when none are given, and prints its name and entries.`,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			registry, keys, err := a.load(ctx, args)
			if err != nil {
				return err
			}
			defer registry.Close()

			listings := make([]listing, 0, len(keys))
			for _, key := range keys {
				c, _ := registry.Get(key)
				name, err := c.Name(ctx)
				if err != nil {
					return fmt.Errorf("%s: %w", key, err)
				}
				entries, err := c.Entries(ctx)
				if err != nil {
					return fmt.Errorf("%s: %w", key, err)
				}
				listings = append(listings, listing{Key: key, Name: name, Entries: entries})
			}

			return a.print(cmd.OutOrStdout(), listings, func(w io.Writer) error {
				for _, l := range listings {
					fmt.Fprintf(w, "%s (%s)\n", l.Name, l.Key)
					for _, entry := range l.Entries {
						fmt.Fprintf(w, "  %s\n", entry)
					}
				}
				return nil
			})
		}),
	}
}
