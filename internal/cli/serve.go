package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/IT-Nick/psytest/internal/app"
	"github.com/IT-Nick/psytest/internal/infra/log"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API и бота уведомлений",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.NewApp(ctx, cfg, app.WithNotifier())
			if err != nil {
				return err
			}
			defer a.Close()

			logger := log.WithComponent("cli")
			if migrate {
				if err := a.Migrate(ctx); err != nil {
					return err
				}
				if _, err := a.Tests().Seed(ctx); err != nil {
					logger.Warn().Err(err).Msg("seed skipped")
				}
			}

			logger.Info().
				Str("addr", cfg.Addr()).
				Msg("starting psychological testing API")
			return a.ListenAndServe(ctx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "создать схему и тест по умолчанию перед запуском")
	return cmd
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Создать таблицы базы данных",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b *backend) error {
				if err := b.migrate(ctx); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Схема базы данных создана")
				if !seed {
					return nil
				}
				return seedTests(ctx, cmd, b)
			})
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "добавить тест по умолчанию, если тестов нет")
	return cmd
}
