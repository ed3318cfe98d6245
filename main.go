package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lucas/ecommerce/cmd/migrate"
	"github.com/lucas/ecommerce/cmd/seed"
	"github.com/lucas/ecommerce/cmd/serve"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ecommerce",
		Short: "Product catalog REST service",
		Long: `Serves the product catalog over HTTP.

Available commands:
  serve    - Start the HTTP API
  migrate  - Apply or roll back database migrations
  seed     - Load the sample catalog`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(serve.NewServeCommand())
	rootCmd.AddCommand(migrate.NewMigrateCommand())
	rootCmd.AddCommand(seed.NewSeedCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
