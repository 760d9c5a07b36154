package cli

import (
	"fmt"
	"io"

	"github.com/IT-Nick/psytest/internal/domain/definitions"
	"github.com/IT-Nick/psytest/internal/domain/model"
	"github.com/fatih/color"
)

// AskQuestions задает вопросы по порядку. Ответ "назад" возвращает к предыдущему вопросу,
// прежний ответ на него при этом перезаписывается.
func AskQuestions(p *Prompter, out io.Writer, def *definitions.Definition) ([]string, error) {
	answers := make([]string, len(def.Questions))
	for i := 0; i < len(def.Questions); {
		_, _ = fmt.Fprintf(out, "\n%s %s\n", color.CyanString("Вопрос %d из %d.", i+1, len(def.Questions)), def.Questions[i].Question)
		answer, err := p.Choice("Ответ", i > 0)
		if err != nil {
			return nil, err
		}
		if answer == answerBack {
			i--
			continue
		}
		answers[i] = answer
		i++
	}
	return answers, nil
}

// LocalResult результат, который клиент отправляет вместе с ответами.
// Для тестов со шкалами считаются баллы, для остальных - количество ответов каждого вида.
func LocalResult(def *definitions.Definition, answers []string) map[string]any {
	if def.HasScales() {
		return definitions.ResultMap(definitions.Score(def, answers))
	}
	counts := map[string]any{
		model.AnswerYes:      0,
		model.AnswerNo:       0,
		model.AnswerDontKnow: 0,
	}
	for _, a := range answers {
		if n, ok := counts[a].(int); ok {
			counts[a] = n + 1
		}
	}
	counts["total"] = len(answers)
	return counts
}
