package static_handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/IT-Nick/psytest/internal/app/handlers/http/handlerutil"
	"github.com/IT-Nick/psytest/internal/domain/definitions"
	"github.com/go-chi/chi/v5"
)

// PathResolver проверяет имя файла и возвращает путь к нему
type PathResolver interface {
	Path(filename string) (string, error)
}

// StaticHandler отдает JSON-файлы тестов как есть
type StaticHandler struct {
	defs PathResolver
}

// NewStaticHandler создает новый экземпляр обработчика
func NewStaticHandler(defs PathResolver) *StaticHandler {
	return &StaticHandler{defs: defs}
}

// ServeHTTP метод для обработки запроса
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path, err := h.defs.Path(chi.URLParam(r, "filename"))
	if err != nil {
		handlerutil.WriteError(w, r, err)
		return
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		handlerutil.WriteError(w, r, fmt.Errorf("%w: %s", definitions.ErrNotFound, path))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	http.ServeFile(w, r, path)
}
