package definitions

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch следит за каталогом и сбрасывает кэш измененных файлов.
// Блокируется до отмены ctx.
func (l *Loader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(l.dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", l.dir, err)
	}

	l.logger.Info().
		Str("event", "definitions.watcher_started").
		Str("dir", l.dir).
		Msg("watching test definitions")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				name := filepath.Base(event.Name)
				l.Invalidate(name)
				l.logger.Debug().
					Str("event", "definitions.invalidated").
					Str("op", event.Op.String()).
					Str("filename", name).
					Msg("definition cache entry dropped")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			l.logger.Warn().Err(err).Msg("fsnotify watcher error")
		}
	}
}
