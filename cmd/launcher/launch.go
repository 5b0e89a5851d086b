package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type launchResult struct {
	Module string `json:"module"`
	Entry  string `json:"entry"`
}

func newLaunchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "launch <module> <entry>",
		Short: "Launch one entry of a category",
		Long: `Launch passes the entry to the category's script as given. The entry does not
have to appear in the category's entry list; the script decides what it means.`,
		Args: cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			module, entry := args[0], args[1]

			c, err := a.open(ctx, module)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Launch(ctx, entry); err != nil {
				return err
			}

			return a.print(cmd.OutOrStdout(), launchResult{Module: module, Entry: entry}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Launched %q from %s\n", entry, module)
				return err
			})
		}),
	}
}
