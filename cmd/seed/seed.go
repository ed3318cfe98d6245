package seed

import (
	"github.com/spf13/cobra"

	"github.com/lucas/ecommerce/cmd/internal/setup"
	"github.com/lucas/ecommerce/database"
)

func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample catalog into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup.Load()
			if err != nil {
				return err
			}

			db, err := database.Open(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer database.Close(db)

			return database.SeedData(cmd.Context(), db, logger)
		},
	}
}
