package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/IT-Nick/psytest/internal/domain/validation"
	"github.com/IT-Nick/psytest/pkg/apiclient"
	"github.com/spf13/cobra"
)

func newClientCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Терминальный клиент для студентов",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "register",
			Short: "Регистрация",
			Args:  cobra.NoArgs,
			RunE:  opts.runRegister,
		},
		&cobra.Command{
			Use:   "login",
			Short: "Вход в систему",
			Args:  cobra.NoArgs,
			RunE:  opts.runLogin,
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Выход из системы",
			Args:  cobra.NoArgs,
			RunE:  opts.runLogout,
		},
		&cobra.Command{
			Use:   "me",
			Short: "Профиль",
			Args:  cobra.NoArgs,
			RunE:  opts.protected(runMe),
		},
		&cobra.Command{
			Use:   "dashboard",
			Short: "Список доступных тестов и их статус",
			Args:  cobra.NoArgs,
			RunE:  opts.protected(runDashboard),
		},
		&cobra.Command{
			Use:   "take <id>",
			Short: "Пройти тест",
			Args:  cobra.ExactArgs(1),
			RunE:  opts.protected(runTake),
		},
		&cobra.Command{
			Use:   "results <id>",
			Short: "Результаты пройденного теста",
			Args:  cobra.ExactArgs(1),
			RunE:  opts.protected(runResults),
		},
	)
	return cmd
}

type protectedFunc func(ctx context.Context, cmd *cobra.Command, api *apiclient.Client, args []string) error

// protected пускает команду только с сохраненной сессией. Если сервер
// отклонил токен, сессия удаляется.
func (o *rootOptions) protected(fn protectedFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		session, err := LoadSession(o.sessionPath)
		if err != nil {
			return err
		}
		api, err := o.sessionClient(cmd, session)
		if err != nil {
			return err
		}

		err = fn(commandContext(cmd), cmd, api, args)
		if err == nil {
			return nil
		}
		if apiclient.IsAuthError(err) {
			_ = ClearSession(o.sessionPath)
		}
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			return errors.New(apiclient.FormatErrorMessage(err))
		}
		return err
	}
}

// sessionClient клиент для сервера, на котором создана сессия. Явно заданный
// другой адрес API - ошибка: токен не уходит на чужой сервер.
func (o *rootOptions) sessionClient(cmd *cobra.Command, session *Session) (*apiclient.Client, error) {
	baseURL := o.apiURL
	if session.BaseURL != "" {
		explicit := o.apiFromEnv || cmd.Flags().Changed("api")
		if explicit && !sameURL(session.BaseURL, o.apiURL) {
			return nil, fmt.Errorf("%w: сессия создана для %s, выполните: psytest client login", ErrSessionServerMismatch, session.BaseURL)
		}
		baseURL = session.BaseURL
	}
	return apiclient.New(baseURL, apiclient.WithToken(session.Token)), nil
}

func sameURL(a, b string) bool {
	return strings.TrimRight(a, "/") == strings.TrimRight(b, "/")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func askPerson(p *Prompter, out io.Writer) (dto.RegisterRequest, error) {
	var req dto.RegisterRequest
	var err error

	if req.LastName, err = p.Field("Фамилия", func(v string) string {
		return validation.Name(v, validation.FieldLastName)
	}); err != nil {
		return req, err
	}
	if req.FirstName, err = p.Field("Имя", func(v string) string {
		return validation.Name(v, validation.FieldFirstName)
	}); err != nil {
		return req, err
	}
	if req.MiddleName, err = p.Field("Отчество", func(v string) string {
		return validation.Name(v, validation.FieldMiddleName)
	}); err != nil {
		return req, err
	}

	_, _ = fmt.Fprintf(out, "Факультеты: %s\n", strings.Join(model.Faculties, ", "))
	if req.Faculty, err = p.Field("Факультет", func(v string) string {
		return validation.Faculty(strings.ToUpper(v))
	}); err != nil {
		return req, err
	}
	req.Faculty = strings.ToUpper(req.Faculty)

	if req.Course, err = p.Int(fmt.Sprintf("Курс (%d-%d)", model.MinCourse, model.MaxCourse), validation.Course); err != nil {
		return req, err
	}
	return req, nil
}

func (o *rootOptions) runRegister(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	p := NewPrompter(cmd.InOrStdin(), out)

	req, err := askPerson(p, out)
	if err != nil {
		return err
	}
	if req.Password, err = p.Field("Пароль", validation.Password); err != nil {
		return err
	}
	if _, err := p.Field("Повторите пароль", func(v string) string {
		if v != req.Password {
			return "Пароли не совпадают"
		}
		return ""
	}); err != nil {
		return err
	}
	if err := validation.Register(&req); err != nil {
		return err
	}

	api := apiclient.New(o.apiURL)
	if _, err := api.Register(commandContext(cmd), req); err != nil {
		return formError(err)
	}
	return o.startSession(out, api, fullName(req))
}

func (o *rootOptions) runLogin(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	p := NewPrompter(cmd.InOrStdin(), out)

	person, err := askPerson(p, out)
	if err != nil {
		return err
	}
	req := dto.LoginRequest(person)
	if req.Password, err = p.Field("Пароль", func(v string) string {
		if v == "" {
			return "Поле обязательно для заполнения"
		}
		return ""
	}); err != nil {
		return err
	}
	if err := validation.Login(&req); err != nil {
		return err
	}

	api := apiclient.New(o.apiURL)
	if _, err := api.Login(commandContext(cmd), req); err != nil {
		return formError(err)
	}
	return o.startSession(out, api, fullName(dto.RegisterRequest(req)))
}

func fullName(req dto.RegisterRequest) string {
	return strings.Join([]string{req.LastName, req.FirstName, req.MiddleName}, " ")
}

// formError ошибка формы входа или регистрации: текст сервера и ошибки по полям
func formError(err error) error {
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	if len(apiErr.Details) == 0 {
		return errors.New(apiErr.Message)
	}
	return fmt.Errorf("%s:\n  %s", apiErr.Message, strings.Join(apiErr.Details, "\n  "))
}

func (o *rootOptions) startSession(out io.Writer, api *apiclient.Client, name string) error {
	session := &Session{
		BaseURL:  api.BaseURL(),
		Token:    api.Token(),
		FullName: name,
		SavedAt:  time.Now(),
	}
	if err := session.Save(o.sessionPath); err != nil {
		return err
	}
	printSuccess(out, "Добро пожаловать, "+name+"!")
	return nil
}

func (o *rootOptions) runLogout(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	session, err := LoadSession(o.sessionPath)
	if errors.Is(err, ErrNoSession) {
		printInfo(out, "Вы не вошли в систему")
		return nil
	}
	if err != nil {
		return err
	}

	// локальную сессию удаляем в любом случае
	api, err := o.sessionClient(cmd, session)
	if err != nil {
		printInfo(out, err.Error())
	} else if err := api.Logout(commandContext(cmd)); err != nil {
		printInfo(out, "Сервер не подтвердил выход: "+apiclient.FormatErrorMessage(err))
	}
	if err := ClearSession(o.sessionPath); err != nil {
		return err
	}
	printSuccess(out, "Вы вышли из системы")
	return nil
}

func runMe(ctx context.Context, cmd *cobra.Command, api *apiclient.Client, _ []string) error {
	me, err := api.Me(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s %s %s\n", me.LastName, me.FirstName, me.MiddleName)
	_, _ = fmt.Fprintf(out, "Факультет: %s, курс: %d\n", me.Faculty, me.Course)
	_, _ = fmt.Fprintf(out, "Зарегистрирован: %s\n", me.CreatedAt.Local().Format(dateLayout))
	_, _ = fmt.Fprintf(out, "Пройдено тестов: %d\n", len(me.CompletedTests))
	return nil
}

func runDashboard(ctx context.Context, cmd *cobra.Command, api *apiclient.Client, _ []string) error {
	tests, err := api.AvailableTests(ctx)
	if err != nil {
		return err
	}
	statuses, err := api.TestStatuses(ctx)
	if err != nil {
		return err
	}
	renderDashboard(cmd.OutOrStdout(), dashboardRows(tests, statuses))
	return nil
}

func parseTestID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id теста должен быть положительным числом: %q", arg)
	}
	return id, nil
}

func runTake(ctx context.Context, cmd *cobra.Command, api *apiclient.Client, args []string) error {
	testID, err := parseTestID(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	statuses, err := api.TestStatuses(ctx)
	if err != nil {
		return err
	}
	for _, s := range statuses {
		if s.TestID == testID && s.Status == model.StatusCompleted {
			printInfo(out, fmt.Sprintf("Тест уже пройден. Результаты: psytest client results %d", testID))
			return nil
		}
	}

	test, err := api.TestByID(ctx, testID)
	if err != nil {
		return err
	}
	def, err := api.LoadTestDefinition(ctx, test.Filename)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "%s\n%s\n", def.Title, def.Description)
	if len(def.Questions) == 0 {
		return fmt.Errorf("в тесте %q нет вопросов", def.Title)
	}

	answers, err := AskQuestions(NewPrompter(cmd.InOrStdin(), out), out, def)
	if err != nil {
		return err
	}

	resp, err := api.CompleteTest(ctx, testID, dto.CompleteTestRequest{
		Answers: answers,
		Result:  LocalResult(def, answers),
	})
	if err != nil {
		return err
	}
	printSuccess(out, "\n"+resp.Message)
	renderResult(out, def.Title, resp.Result)
	return nil
}

func runResults(ctx context.Context, cmd *cobra.Command, api *apiclient.Client, args []string) error {
	testID, err := parseTestID(args[0])
	if err != nil {
		return err
	}
	res, err := api.TestResults(ctx, testID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	renderResult(out, res.TestTitle, res.Result)
	_, _ = fmt.Fprintf(out, "\nТест пройден %s\n", res.CompletedAt.Local().Format(dateLayout))
	return nil
}
