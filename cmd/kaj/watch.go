package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"src.kaj.sh/pkg/diag"
)

// Compiles the files, then compiles each of them again when it is written to,
// until ctx is done. Directories are watched rather than files, so that
// editors that replace a file on save are followed.
func watch(ctx context.Context, files []string, compile func(string) error, stderr io.Writer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		if !watched[abs] {
			watched[abs] = true
			if err := w.Add(filepath.Dir(abs)); err != nil {
				return err
			}
		}
	}
	for _, file := range files {
		if err := compile(file); err != nil {
			diag.ShowError(stderr, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Printf("%s changed", event.Name)
			if err := compile(event.Name); err != nil {
				diag.ShowError(stderr, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watch error: %v", err)
		}
	}
}
