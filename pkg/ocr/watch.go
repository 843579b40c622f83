package ocr

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// WatchKeywordsFile reloads the exclusion-keywords file into the pipeline
// whenever it changes, so new entries affect classification without a
// restart. extra keywords are re-appended on every reload. The returned stop
// function closes the watcher.
func (p *Pipeline) WatchKeywordsFile(path string, extra []string) (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// watch the directory: editors replace files rather than write in place
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	base := filepath.Base(path)
	go func() {
		// debounce burst of events from a single save
		var pending *time.Timer
		reload := func() {
			kw, err := LoadKeywordsFile(path)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("keywords reload failed")
				return
			}
			p.SetVocabulary(VocabularyFromKeywords(append(kw, extra...)))
		}
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(300*time.Millisecond, reload)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("keywords watch error")
			}
		}
	}()
	return func() { _ = w.Close() }, nil
}
