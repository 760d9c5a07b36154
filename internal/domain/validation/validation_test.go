package validation

import (
	"errors"
	"testing"

	"github.com/IT-Nick/psytest/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		field string
		want  string
	}{
		{"пустое", "  ", FieldFirstName, "Поле обязательно для заполнения"},
		{"одна буква", "А", FieldFirstName, "Минимум 2 символа"},
		{"латиница", "Ivan", FieldFirstName, "Только кириллица"},
		{"дефис в имени", "Анна-Мария", FieldFirstName, "Только кириллица"},
		{"дефис в фамилии", "Римский-Корсаков", FieldLastName, ""},
		{"два дефиса в фамилии", "А-б-в", FieldLastName, "Только кириллица, допускается один дефис"},
		{"ё", "Пётр", FieldFirstName, ""},
		{"пробелы по краям", "  Иван ", FieldFirstName, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.value, tt.field))
		})
	}
}

func TestPassword(t *testing.T) {
	assert.Equal(t, "Минимум 6 символов", Password("abc"))
	assert.NotEmpty(t, Password("пароль123"))
	assert.NotEmpty(t, Password("abcdefghijklmnopqrstuvwxyz0123456789"))
	assert.Empty(t, Password("Secret_1!"))
}

func TestFacultyAndCourse(t *testing.T) {
	assert.Empty(t, Faculty("ФКСИС"))
	assert.Equal(t, "Неизвестный факультет: ФФ", Faculty("ФФ"))
	assert.Empty(t, Course(1))
	assert.Empty(t, Course(6))
	assert.Equal(t, "Неизвестный курс: 7", Course(7))
	assert.Equal(t, "Неизвестный курс: 0", Course(0))
}

func TestAnswers(t *testing.T) {
	assert.Empty(t, Answers([]string{"да", "НЕТ", "Не знаю"}))

	errs := Answers([]string{"да", "может быть"})
	require.Len(t, errs, 1)
	assert.Equal(t, "answers -> 1", errs[0].Field)

	assert.Len(t, Answers(nil), 1)
	assert.Empty(t, Answers([]string{}))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Иванов", Capitalize("иВАНОВ"))
	assert.Equal(t, "Римский-Корсаков", Capitalize(" римский-корсаков "))
}

func TestRegister_NormalizesNames(t *testing.T) {
	req := &dto.RegisterRequest{
		FirstName:  "иван",
		LastName:   "петров-водкин",
		MiddleName: "ИВАНОВИЧ",
		Faculty:    "ФИТУ",
		Course:     2,
		Password:   "qwerty1",
	}
	require.NoError(t, Register(req))
	assert.Equal(t, "Иван", req.FirstName)
	assert.Equal(t, "Петров-Водкин", req.LastName)
	assert.Equal(t, "Иванович", req.MiddleName)
}

func TestRegister_CollectsErrors(t *testing.T) {
	req := &dto.RegisterRequest{FirstName: "John", Course: 9}
	err := Register(req)
	require.Error(t, err)

	var errs Errors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs.Details(), "first_name: Только кириллица")
	assert.Contains(t, errs.Details(), "course: Неизвестный курс: 9")
	assert.Len(t, errs, 6)
}

func TestLogin_DoesNotCheckPasswordRules(t *testing.T) {
	req := &dto.LoginRequest{
		FirstName:  "Иван",
		LastName:   "Петров",
		MiddleName: "Иванович",
		Faculty:    "ФИБ",
		Course:     1,
		Password:   "x",
	}
	assert.NoError(t, Login(req))

	req.Password = ""
	assert.Error(t, Login(req))
}
