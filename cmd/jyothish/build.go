package main

import (
	"fmt"

	"github.com/spf13/cobra"

	blog "github.com/jyodsh/jyothish-in"
	"github.com/jyodsh/jyothish-in/views"
)

func (c *cli) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the whole site as static files",
		Long: `The build command loads every post from the content directory and
writes the home page, the blog listing, one page per post, the feeds, the
sitemap and robots.txt into the output directory (default ./dist). The output
directory is removed first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := blog.New(c.cfg.site(), views.Default())
			defer app.Close()

			n, err := app.Export(c.cfg.OutputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d posts into %s\n", n, c.cfg.OutputDir)
			return nil
		},
	}
	cmd.Flags().String("out", "", "output directory (overrides config)")
	return cmd
}
