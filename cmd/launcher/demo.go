package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/launcher/internal/category"
)

type demoResult struct {
	Name     string           `json:"name"`
	Launched []category.Entry `json:"launched"`
}

func newDemoCmd(a *app) *cobra.Command {
	var native bool

	cmd := &cobra.Command{
		Use:   "demo [module]",
		Short: "Print a category's name, then launch and print each entry",
		Long: `Demo loads one category, prints its name, and launches every entry in order,
printing each entry after it was launched. The module defaults to "test".`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var c category.Category
			if native {
				c = category.Example().WithOutput(out)
			} else {
				module := "test"
				if len(args) > 0 {
					module = args[0]
				}
				sc, err := a.open(ctx, module)
				if err != nil {
					return err
				}
				defer sc.Close()
				c = sc
			}

			name, err := c.Name(ctx)
			if err != nil {
				return err
			}
			if a.output == outputText {
				fmt.Fprintf(out, "%q\n", name)
			}

			entries, err := c.Entries(ctx)
			if err != nil {
				return err
			}

			result := demoResult{Name: name, Launched: make([]category.Entry, 0, len(entries))}
			for _, entry := range entries {
				if err := c.Launch(ctx, entry); err != nil {
					return err
				}
				result.Launched = append(result.Launched, entry)
				if a.output == outputText {
					fmt.Fprintf(out, "%q\n", entry)
				}
			}

			return a.print(out, result, func(io.Writer) error { return nil })
		}),
	}

	cmd.Flags().BoolVar(&native, "native", false, "Use the built-in example category instead of a script")
	return cmd
}
