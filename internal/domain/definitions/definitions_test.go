package definitions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const arrayDefinition = `[
  {"title": "Опросник", "description": "Короткий опросник", "results": {
    "Экстраверсия": {"description": "Общительность", "positive": [1, 2], "negative": [3]}
  }},
  {"question": "Вам нравятся вечеринки?"},
  {"question": ""},
  {"question": "Легко ли вы знакомитесь?"},
  {"question": "Любите ли вы одиночество?"}
]`

const objectDefinition = `{
  "title": "Тест",
  "questions": [{"question": "Первый?"}, {"question": "Второй?"}],
  "results": {"Шкала": {"description": "d", "positive": [1], "negative": [2]}}
}`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestParse_ArrayFormat(t *testing.T) {
	def, err := Parse([]byte(arrayDefinition))
	require.NoError(t, err)

	assert.Equal(t, "Опросник", def.Title)
	assert.Equal(t, "Короткий опросник", def.Description)
	require.Len(t, def.Questions, 3)
	assert.Equal(t, "Легко ли вы знакомитесь?", def.Questions[1].Question)
	assert.True(t, def.HasScales())
}

func TestParse_ObjectFormatDefaults(t *testing.T) {
	def, err := Parse([]byte(objectDefinition))
	require.NoError(t, err)

	assert.Equal(t, "Тест", def.Title)
	assert.Equal(t, DefaultDescription, def.Description)
	assert.Len(t, def.Questions, 2)

	def, err = Parse([]byte(`[{}]`))
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, def.Title)
	assert.Empty(t, def.Questions)
	assert.False(t, def.HasScales())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("  "))
	assert.ErrorIs(t, err, ErrEmptyDefinition)

	_, err = Parse([]byte("[]"))
	assert.ErrorIs(t, err, ErrEmptyDefinition)

	_, err = Parse([]byte(`"text"`))
	assert.Error(t, err)

	_, err = Parse([]byte(`[{"title": 1}]`))
	assert.Error(t, err)
}

func TestScore(t *testing.T) {
	def, err := Parse([]byte(arrayDefinition))
	require.NoError(t, err)

	got := Score(def, []string{"Да", "не знаю", "нет"})
	require.Contains(t, got, "Экстраверсия")
	assert.Equal(t, ScaleResult{
		Score:            2,
		MaxPossibleScore: 3,
		Level:            LevelLow,
		Description:      "Общительность",
	}, got["Экстраверсия"])

	// ответов меньше, чем вопросов
	got = Score(def, []string{"да"})
	assert.Equal(t, 1, got["Экстраверсия"].Score)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, LevelLow, Level(0))
	assert.Equal(t, LevelLow, Level(5))
	assert.Equal(t, LevelMedium, Level(6))
	assert.Equal(t, LevelMedium, Level(12))
	assert.Equal(t, LevelHigh, Level(13))
}

func TestResultMapRoundTrip(t *testing.T) {
	in := map[string]ScaleResult{
		"Нейротизм": {Score: 14, MaxPossibleScore: 24, Level: LevelHigh, Description: "d"},
	}
	m := ResultMap(in)
	// после JSON числа приходят как float64
	m["Нейротизм"].(map[string]any)["score"] = float64(14)
	m["junk"] = "x"

	assert.Equal(t, in, ScaleResults(m))
}

func TestLoader_LoadAndCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "questions.json", arrayDefinition)

	l := NewLoader(dir)
	def, err := l.Load("questions.json")
	require.NoError(t, err)
	assert.Equal(t, "Опросник", def.Title)
	assert.Equal(t, 1, l.Cached())

	writeFile(t, dir, "questions.json", objectDefinition)
	def, err = l.Load("questions.json")
	require.NoError(t, err)
	assert.Equal(t, "Опросник", def.Title, "значение берется из кэша")

	l.Invalidate("questions.json")
	def, err = l.Load("questions.json")
	require.NoError(t, err)
	assert.Equal(t, "Тест", def.Title)
}

func TestLoader_RejectsBadNames(t *testing.T) {
	l := NewLoader(t.TempDir())
	for _, name := range []string{"", "../secret.json", "a/b.json", `a\b.json`, "notes.txt"} {
		_, err := l.Load(name)
		assert.ErrorIs(t, err, ErrInvalidFilename, name)
	}

	_, err := l.Load("missing.json")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoader_TitleFallback(t *testing.T) {
	l := NewLoader(t.TempDir())
	assert.Equal(t, "Big Five", l.Title("big_five.json"))

	assert.Equal(t, "Тревожность Спилбергера", TitleFromFilename("тревожность_спилбергера.json"))
}

func TestLoader_WatchInvalidates(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeFile(t, dir, "questions.json", arrayDefinition)

	l := NewLoader(dir)
	_, err := l.Load("questions.json")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Watch(ctx) }()

	require.Eventually(t, func() bool {
		if err := os.WriteFile(filepath.Join(dir, "questions.json"), []byte(objectDefinition), 0o644); err != nil {
			return false
		}
		def, err := l.Load("questions.json")
		return err == nil && def.Title == "Тест"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestLoader_WatchMissingDir(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, l.Watch(context.Background()))
}
