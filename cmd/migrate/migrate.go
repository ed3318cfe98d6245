package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucas/ecommerce/cmd/internal/setup"
	"github.com/lucas/ecommerce/database"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Apply or roll back database migrations",
		Long: `Apply the embedded schema migrations (default) or roll all of them back.

Examples:
  ecommerce migrate        # same as "migrate up"
  ecommerce migrate down   # drop the catalog tables`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := database.Up
			if len(args) == 1 {
				direction = database.Direction(args[0])
			}
			if direction != database.Up && direction != database.Down {
				return fmt.Errorf("unknown direction %q, expected up or down", args[0])
			}

			cfg, logger, err := setup.Load()
			if err != nil {
				return err
			}
			return database.Migrate(cfg.DatabaseURL, direction, logger)
		},
	}
}
