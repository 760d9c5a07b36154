package definitions

import (
	"strings"

	"github.com/IT-Nick/psytest/internal/domain/model"
)

// Уровни выраженности шкалы
const (
	LevelHigh   = "высокий"
	LevelMedium = "средний"
	LevelLow    = "низкий"
)

const (
	highThreshold   = 12
	mediumThreshold = 6
)

// ScaleResult результат по одной шкале
type ScaleResult struct {
	Score            int    `json:"score"`
	MaxPossibleScore int    `json:"max_possible_score"`
	Level            string `json:"level"`
	Description      string `json:"description"`
}

// Level уровень по количеству баллов
func Level(score int) string {
	switch {
	case score > highThreshold:
		return LevelHigh
	case score >= mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Score считает баллы по всем шкалам определения. answers[i] - ответ на вопрос i+1.
func Score(def *Definition, answers []string) map[string]ScaleResult {
	out := make(map[string]ScaleResult, len(def.Results))
	for name, scale := range def.Results {
		score := count(answers, scale.Positive, model.AnswerYes) +
			count(answers, scale.Negative, model.AnswerNo)
		out[name] = ScaleResult{
			Score:            score,
			MaxPossibleScore: len(scale.Positive) + len(scale.Negative),
			Level:            Level(score),
			Description:      scale.Description,
		}
	}
	return out
}

func count(answers []string, numbers []int, want string) int {
	n := 0
	for _, num := range numbers {
		i := num - 1
		if i < 0 || i >= len(answers) {
			continue
		}
		if strings.ToLower(strings.TrimSpace(answers[i])) == want {
			n++
		}
	}
	return n
}

// ResultMap переводит результаты шкал в вид, который хранится в БД
// и отдается клиенту
func ResultMap(results map[string]ScaleResult) map[string]any {
	out := make(map[string]any, len(results))
	for name, r := range results {
		out[name] = map[string]any{
			"score":              r.Score,
			"max_possible_score": r.MaxPossibleScore,
			"level":              r.Level,
			"description":        r.Description,
		}
	}
	return out
}

// ScaleResults обратное к ResultMap преобразование. Значения, не похожие
// на результат шкалы, пропускаются.
func ScaleResults(result map[string]any) map[string]ScaleResult {
	out := make(map[string]ScaleResult, len(result))
	for name, v := range result {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		r := ScaleResult{
			Score:            toInt(m["score"]),
			MaxPossibleScore: toInt(m["max_possible_score"]),
		}
		if r.MaxPossibleScore == 0 {
			r.MaxPossibleScore = toInt(m["maxPossibleScore"])
		}
		r.Level, _ = m["level"].(string)
		r.Description, _ = m["description"].(string)
		if r.Level == "" {
			r.Level = Level(r.Score)
		}
		out[name] = r
	}
	return out
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
