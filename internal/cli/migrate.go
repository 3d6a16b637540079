package cli

import (
	"quizlink/internal/config"
	"quizlink/internal/infra/postgres/migrations"
	"quizlink/internal/logging"

	"github.com/spf13/cobra"
)

// newMigrateCmd applies database migrations.
func newMigrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the postgres kv_entries table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)

			group, err := migrations.Apply(cmd.Context(), cfg.Postgres.URL)
			if err != nil {
				return err
			}
			if group.IsZero() {
				logger.Info().Msg("no new migrations")
				return nil
			}
			logger.Info().Str("group", group.String()).Msg("migrations applied")
			return nil
		},
	}
}
