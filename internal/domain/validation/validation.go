// Package validation содержит правила проверки полей форм регистрации и входа,
// а также ответов на вопросы теста. Используется и сервером, и CLI-клиентом.
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/IT-Nick/psytest/internal/domain/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Поля форм
const (
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldMiddleName = "middle_name"
	FieldFaculty    = "faculty"
	FieldCourse     = "course"
	FieldPassword   = "password"
	FieldAnswers    = "answers"
	FieldResult     = "result"
)

const (
	minNameLen     = 2
	maxNameLen     = 100
	minPasswordLen = 6
	maxPasswordLen = 32
)

var (
	namePattern     = regexp.MustCompile(`^[А-Яа-яЁё]+$`)
	lastNamePattern = regexp.MustCompile(`^[А-Яа-яЁё]+(-[А-Яа-яЁё]+)?$`)
	passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+\-=]+$`)
)

// FieldError ошибка конкретного поля
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// Errors набор ошибок валидации
type Errors []FieldError

func (e Errors) Error() string {
	return strings.Join(e.Details(), "; ")
}

// Details строки вида "поле: сообщение" для ответа API
func (e Errors) Details() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.String())
	}
	return out
}

// Add добавляет ошибку, если msg не пустое
func (e *Errors) Add(field, msg string) {
	if msg != "" {
		*e = append(*e, FieldError{Field: field, Message: msg})
	}
}

// Err возвращает nil, если ошибок нет
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Name проверяет имя или отчество. Дефис разрешен только в фамилии.
func Name(value, field string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "Поле обязательно для заполнения"
	}
	n := utf8.RuneCountInString(v)
	if n < minNameLen {
		return "Минимум 2 символа"
	}
	if n > maxNameLen {
		return "Максимум 100 символов"
	}
	if field == FieldLastName {
		if !lastNamePattern.MatchString(v) {
			return "Только кириллица, допускается один дефис"
		}
		return ""
	}
	if !namePattern.MatchString(v) {
		return "Только кириллица"
	}
	return ""
}

// Password проверяет длину и допустимые символы пароля
func Password(value string) string {
	n := len(value)
	if n < minPasswordLen {
		return "Минимум 6 символов"
	}
	if n > maxPasswordLen {
		return "Максимум 32 символа"
	}
	if !passwordPattern.MatchString(value) {
		return "Пароль может содержать только латинские буквы, цифры и символы !@#$%^&*()_+-="
	}
	return ""
}

// Faculty проверяет, что факультет из списка
func Faculty(value string) string {
	if value == "" {
		return "Поле обязательно для заполнения"
	}
	if !slices.Contains(model.Faculties, value) {
		return fmt.Sprintf("Неизвестный факультет: %s", value)
	}
	return ""
}

// Course проверяет номер курса
func Course(value int) string {
	if value < model.MinCourse || value > model.MaxCourse {
		return fmt.Sprintf("Неизвестный курс: %d", value)
	}
	return ""
}

// Answer проверяет вариант ответа без учета регистра
func Answer(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case model.AnswerYes, model.AnswerNo, model.AnswerDontKnow:
		return ""
	}
	return fmt.Sprintf("Недопустимый ответ: %s. Разрешены: да, нет, не знаю", value)
}

// Answers проверяет список ответов
func Answers(values []string) Errors {
	var errs Errors
	// отсутствующее поле - ошибка, пустой список допустим
	if values == nil {
		errs.Add(FieldAnswers, "Поле обязательно для заполнения")
		return errs
	}
	for i, v := range values {
		errs.Add(fmt.Sprintf("%s -> %d", FieldAnswers, i), Answer(v))
	}
	return errs
}

// Capitalize приводит имя к виду "Иванов" или "Римский-Корсаков"
func Capitalize(value string) string {
	// Caser хранит состояние, поэтому создается на каждый вызов
	caser := cases.Title(language.Russian)
	parts := strings.Split(strings.TrimSpace(value), "-")
	for i, p := range parts {
		parts[i] = caser.String(p)
	}
	return strings.Join(parts, "-")
}

// Register проверяет форму регистрации и нормализует ФИО
func Register(req *dto.RegisterRequest) error {
	var errs Errors
	errs.Add(FieldFirstName, Name(req.FirstName, FieldFirstName))
	errs.Add(FieldLastName, Name(req.LastName, FieldLastName))
	errs.Add(FieldMiddleName, Name(req.MiddleName, FieldMiddleName))
	errs.Add(FieldFaculty, Faculty(req.Faculty))
	errs.Add(FieldCourse, Course(req.Course))
	errs.Add(FieldPassword, Password(req.Password))
	if err := errs.Err(); err != nil {
		return err
	}
	normalizeNames(req)
	return nil
}

// Login проверяет форму входа. Пароль проверяется только на наличие,
// чтобы не раскрывать правила при неверном вводе.
func Login(req *dto.LoginRequest) error {
	var errs Errors
	errs.Add(FieldFirstName, Name(req.FirstName, FieldFirstName))
	errs.Add(FieldLastName, Name(req.LastName, FieldLastName))
	errs.Add(FieldMiddleName, Name(req.MiddleName, FieldMiddleName))
	errs.Add(FieldFaculty, Faculty(req.Faculty))
	errs.Add(FieldCourse, Course(req.Course))
	if req.Password == "" {
		errs.Add(FieldPassword, "Поле обязательно для заполнения")
	}
	if err := errs.Err(); err != nil {
		return err
	}
	normalizeNames((*dto.RegisterRequest)(req))
	return nil
}

func normalizeNames(req *dto.RegisterRequest) {
	req.FirstName = Capitalize(req.FirstName)
	req.LastName = Capitalize(req.LastName)
	req.MiddleName = Capitalize(req.MiddleName)
}
