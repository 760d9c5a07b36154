package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/IT-Nick/psytest/internal/app"
	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/spf13/cobra"
)

type adminTests interface {
	ListAll(ctx context.Context) ([]model.Test, error)
	Create(ctx context.Context, filename string, available bool) (*model.Test, error)
	SetAvailability(ctx context.Context, testID int, available bool) error
	Seed(ctx context.Context) (*model.Test, error)
}

type adminUsers interface {
	List(ctx context.Context) ([]model.User, error)
}

// backend то, с чем работают команды администрирования
type backend struct {
	tests   adminTests
	users   adminUsers
	title   func(filename string) string
	migrate func(ctx context.Context) error
}

// openBackend подключается к базе по конфигурации
func (o *rootOptions) openBackend(ctx context.Context) (*backend, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return &backend{
		tests:   a.Tests(),
		users:   a.Users(),
		title:   a.Definitions().Title,
		migrate: a.Migrate,
	}, a.Close, nil
}

// withBackend открывает backend на время выполнения fn
func (o *rootOptions) withBackend(cmd *cobra.Command, fn func(ctx context.Context, b *backend) error) error {
	open := o.open
	if open == nil {
		open = o.openBackend
	}
	ctx := commandContext(cmd)
	b, closeFn, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, b)
}

func newTestsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tests",
		Short: "Управление тестами в базе данных",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Показать все тесты",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b *backend) error {
				tests, err := b.tests.ListAll(ctx)
				if err != nil {
					return err
				}
				renderTests(cmd.OutOrStdout(), tests, b.title)
				return nil
			})
		},
	}

	var disabled bool
	add := &cobra.Command{
		Use:   "add <file.json>",
		Short: "Добавить тест из каталога с файлами тестов",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b *backend) error {
				test, err := b.tests.Create(ctx, args[0], !disabled)
				if err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Тест %q добавлен, id=%d", test.Filename, test.ID))
				return nil
			})
		},
	}
	add.Flags().BoolVar(&disabled, "disabled", false, "добавить выключенным")

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Добавить тест по умолчанию, если тестов нет",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b *backend) error {
				return seedTests(ctx, cmd, b)
			})
		},
	}

	cmd.AddCommand(list, add, availabilityCmd(opts, "enable", true), availabilityCmd(opts, "disable", false), seed)
	return cmd
}

func availabilityCmd(opts *rootOptions, use string, available bool) *cobra.Command {
	short := "Сделать тест доступным"
	done := "включен"
	if !available {
		short = "Скрыть тест от студентов"
		done = "выключен"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id теста должен быть числом: %q", args[0])
			}
			return opts.withBackend(cmd, func(ctx context.Context, b *backend) error {
				if err := b.tests.SetAvailability(ctx, id, available); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Тест %d %s", id, done))
				return nil
			})
		},
	}
}

func seedTests(ctx context.Context, cmd *cobra.Command, b *backend) error {
	test, err := b.tests.Seed(ctx)
	if err != nil {
		return err
	}
	if test == nil {
		printInfo(cmd.OutOrStdout(), "Тесты уже есть, ничего не добавлено")
		return nil
	}
	printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Добавлен тест %q, id=%d", test.Filename, test.ID))
	return nil
}

func newUsersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Пользователи",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Показать зарегистрированных студентов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b *backend) error {
				users, err := b.users.List(ctx)
				if err != nil {
					return err
				}
				renderUsers(cmd.OutOrStdout(), users)
				return nil
			})
		},
	})
	return cmd
}
