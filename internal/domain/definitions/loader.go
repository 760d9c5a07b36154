package definitions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/IT-Nick/psytest/internal/infra/log"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrInvalidFilename = errors.New("invalid definition filename")
	ErrNotFound        = errors.New("definition not found")
)

// Loader читает определения тестов из каталога и кэширует их
type Loader struct {
	dir    string
	logger zerolog.Logger

	mu    sync.RWMutex
	cache map[string]*Definition
}

// NewLoader создает загрузчик для каталога dir
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:    dir,
		logger: log.WithComponent("definitions"),
		cache:  make(map[string]*Definition),
	}
}

// Dir каталог с файлами тестов
func (l *Loader) Dir() string {
	return l.dir
}

// Path полный путь к файлу. Имена с разделителями пути и ".." отклоняются.
func (l *Loader) Path(filename string) (string, error) {
	if err := CheckFilename(filename); err != nil {
		return "", err
	}
	return filepath.Join(l.dir, filename), nil
}

// CheckFilename проверяет, что имя файла не выходит за пределы каталога
func CheckFilename(filename string) error {
	if filename == "" || filename == "." ||
		strings.ContainsAny(filename, `/\`) ||
		strings.Contains(filename, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".json") {
		return fmt.Errorf("%w: %q is not a json file", ErrInvalidFilename, filename)
	}
	return nil
}

// Load возвращает определение теста из кэша или с диска
func (l *Loader) Load(filename string) (*Definition, error) {
	path, err := l.Path(filename)
	if err != nil {
		return nil, err
	}

	l.mu.RLock()
	def, ok := l.cache[filename]
	l.mu.RUnlock()
	if ok {
		return def, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- имя проверено в Path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, fmt.Errorf("read definition %s: %w", filename, err)
	}

	def, err = Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse definition %s: %w", filename, err)
	}

	l.mu.Lock()
	l.cache[filename] = def
	l.mu.Unlock()
	return def, nil
}

// Title название теста. Если файл не читается, название строится из имени файла:
// "big_five.json" -> "Big Five".
func (l *Loader) Title(filename string) string {
	def, err := l.Load(filename)
	if err != nil {
		l.logger.Warn().Err(err).Str("filename", filename).Msg("definition unavailable, using filename as title")
		return TitleFromFilename(filename)
	}
	return def.Title
}

// TitleFromFilename название теста по имени файла
func TitleFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".json")
	name = strings.ReplaceAll(name, "_", " ")
	return cases.Title(language.Und).String(name)
}

// Invalidate удаляет файл из кэша
func (l *Loader) Invalidate(filename string) {
	l.mu.Lock()
	delete(l.cache, filename)
	l.mu.Unlock()
}

// Cached количество закэшированных определений
func (l *Loader) Cached() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cache)
}
