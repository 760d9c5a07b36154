package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/IT-Nick/psytest/internal/domain/definitions"
	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

const dateLayout = "02.01.2006"

func printSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, color.GreenString(msg))
}

func printInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, color.CyanString(msg))
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func availability(available bool) string {
	if available {
		return "да"
	}
	return "нет"
}

func renderTests(w io.Writer, tests []model.Test, title func(string) string) {
	if len(tests) == 0 {
		printInfo(w, "Тестов нет")
		return
	}
	table := newTable(w, "ID", "Файл", "Название", "Доступен", "Создан")
	for _, t := range tests {
		table.Append([]string{
			strconv.Itoa(t.ID),
			t.Filename,
			title(t.Filename),
			availability(t.IsAvailable),
			t.CreatedAt.Local().Format(dateLayout),
		})
	}
	table.Render()
}

func renderUsers(w io.Writer, users []model.User) {
	if len(users) == 0 {
		printInfo(w, "Пользователей нет")
		return
	}
	table := newTable(w, "ID", "ФИО", "Факультет", "Курс", "Зарегистрирован")
	for _, u := range users {
		table.Append([]string{
			strconv.Itoa(u.ID),
			u.FullName(),
			u.Faculty,
			strconv.Itoa(u.Course),
			u.CreatedAt.Local().Format(dateLayout),
		})
	}
	table.Render()
	_, _ = fmt.Fprintf(w, "Всего: %d\n", len(users))
}

// dashboardRow строка списка тестов студента
type dashboardRow struct {
	ID          int
	Title       string
	Completed   bool
	CompletedAt *time.Time
}

func dashboardRows(tests []dto.TestResponse, statuses []dto.TestStatus) []dashboardRow {
	byID := make(map[int]dto.TestStatus, len(statuses))
	for _, s := range statuses {
		byID[s.TestID] = s
	}
	rows := make([]dashboardRow, 0, len(tests))
	for _, t := range tests {
		row := dashboardRow{ID: t.ID, Title: definitions.TitleFromFilename(t.Filename)}
		if s, ok := byID[t.ID]; ok {
			if s.TestTitle != "" {
				row.Title = s.TestTitle
			}
			row.Completed = s.Status == model.StatusCompleted
			row.CompletedAt = s.CompletedAt
		}
		rows = append(rows, row)
	}
	return rows
}

func renderDashboard(w io.Writer, rows []dashboardRow) {
	if len(rows) == 0 {
		printInfo(w, "Нет доступных тестов")
		return
	}
	table := newTable(w, "ID", "Тест", "Статус", "Пройден")
	completed := 0
	for _, r := range rows {
		status := color.BlueString("Не пройден")
		date := ""
		if r.Completed {
			completed++
			status = color.GreenString("Пройден")
			if r.CompletedAt != nil {
				date = r.CompletedAt.Local().Format(dateLayout)
			}
		}
		table.Append([]string{strconv.Itoa(r.ID), r.Title, status, date})
	}
	table.Render()
	_, _ = fmt.Fprintf(w, "Пройдено %d из %d\n", completed, len(rows))
}

func levelColor(level string) func(format string, a ...interface{}) string {
	switch level {
	case definitions.LevelHigh:
		return color.RedString
	case definitions.LevelMedium:
		return color.BlueString
	default:
		return color.GreenString
	}
}

// renderResult печатает результат по шкалам или, если шкал нет, поля результата как есть
func renderResult(w io.Writer, title string, result map[string]any) {
	_, _ = fmt.Fprintln(w, color.New(color.Bold).Sprint(title))

	scales := definitions.ScaleResults(result)
	if len(scales) == 0 {
		keys := make([]string, 0, len(result))
		for k := range result {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		table := newTable(w, "Показатель", "Значение")
		for _, k := range keys {
			table.Append([]string{k, fmt.Sprint(result[k])})
		}
		table.Render()
		return
	}

	names := make([]string, 0, len(scales))
	for name := range scales {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := scales[name]
		_, _ = fmt.Fprintf(w, "\n%s: %s уровень\n", color.New(color.Bold).Sprint(name), levelColor(s.Level)("%s", s.Level))
		_, _ = fmt.Fprintf(w, "  Баллы: %d из %d\n", s.Score, s.MaxPossibleScore)
		if s.Description != "" {
			_, _ = fmt.Fprintf(w, "  %s\n", s.Description)
		}
	}
}
