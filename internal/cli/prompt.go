package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/IT-Nick/psytest/internal/domain/validation"
	"github.com/fatih/color"
)

// ErrInputClosed ввод закончился раньше, чем форма была заполнена
var ErrInputClosed = errors.New("ввод прерван")

// Prompter построчный ввод с подсказками
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter создает Prompter
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Line печатает label и читает строку
func (p *Prompter) Line(label string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Field спрашивает значение, пока check не вернет пустую строку
func (p *Prompter) Field(label string, check func(string) string) (string, error) {
	for {
		v, err := p.Line(label)
		if err != nil {
			return "", err
		}
		msg := check(v)
		if msg == "" {
			return v, nil
		}
		_, _ = fmt.Fprintln(p.out, color.RedString("  %s", msg))
	}
}

// Int спрашивает целое число
func (p *Prompter) Int(label string, check func(int) string) (int, error) {
	v, err := p.Field(label, func(s string) string {
		n, err := strconv.Atoi(s)
		if err != nil {
			return "Введите число"
		}
		return check(n)
	})
	if err != nil {
		return 0, err
	}
	n, _ := strconv.Atoi(v)
	return n, nil
}

// Choice ответ на вопрос теста: да / нет / не знаю или назад
func (p *Prompter) Choice(label string, allowBack bool) (string, error) {
	hint := "да / нет / не знаю"
	if allowBack {
		hint += " / назад"
	}
	for {
		v, err := p.Line(fmt.Sprintf("%s [%s]", label, hint))
		if err != nil {
			return "", err
		}
		v = strings.ToLower(v)
		switch v {
		case "д", "y", "yes":
			v = model.AnswerYes
		case "н", "n", "no":
			v = model.AnswerNo
		case "?", "нз":
			v = model.AnswerDontKnow
		}
		if allowBack && (v == answerBack || v == "b") {
			return answerBack, nil
		}
		if validation.Answer(v) == "" {
			return v, nil
		}
		_, _ = fmt.Fprintln(p.out, color.RedString("  Ответьте: %s", hint))
	}
}

const answerBack = "назад"
