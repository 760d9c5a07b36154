package model

// Факультеты, доступные при регистрации
var Faculties = []string{"ФИБ", "ФКСИС", "ФКП", "ФРЭ", "ИЭФ", "ФИТУ"}

// Допустимые курсы обучения
const (
	MinCourse = 1
	MaxCourse = 6
)

// Варианты ответа на вопрос теста
const (
	AnswerYes      = "да"
	AnswerNo       = "нет"
	AnswerDontKnow = "не знаю"
)
