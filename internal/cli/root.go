// Package cli команды psytest: сервер, администрирование и терминальный клиент.
package cli

import (
	"context"
	"os"

	"github.com/IT-Nick/psytest/internal/infra/config"
	"github.com/IT-Nick/psytest/internal/infra/log"
	"github.com/IT-Nick/psytest/pkg/apiclient"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath  string
	apiURL      string
	apiFromEnv  bool
	sessionPath string

	// open подменяет подключение к базе в тестах
	open func(ctx context.Context) (*backend, func(), error)
}

// NewRootCmd корневая команда psytest
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "psytest",
		Short:         "Система психологического тестирования студентов",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	apiURL := os.Getenv("PSYTEST_API_URL")
	opts.apiFromEnv = apiURL != ""
	if apiURL == "" {
		apiURL = apiclient.DefaultBaseURL
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", os.Getenv("CONFIG_PATH"), "путь к YAML-конфигурации сервера")
	flags.StringVar(&opts.apiURL, "api", apiURL, "адрес API для клиентских команд")
	flags.StringVar(&opts.sessionPath, "session", DefaultSessionPath(), "файл сессии клиента")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newTestsCmd(opts),
		newUsersCmd(opts),
		newClientCmd(opts),
	)
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	log.Configure(log.Config{Level: cfg.Log.Level})
	return cfg, nil
}
