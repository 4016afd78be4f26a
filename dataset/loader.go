package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Loader streams the tables read from one CSV source. When the source is a
// named file, the file is followed: rows appended to it are parsed as they
// are written, and a replaced file is read again from the start.
type Loader struct {
	name   string
	open   func() (io.ReadCloser, error)
	follow bool
	log    *slog.Logger
}

// Open returns a loader following the file at path.
func Open(path string) *Loader {
	return &Loader{
		name:   path,
		open:   func() (io.ReadCloser, error) { return os.Open(path) },
		follow: true,
		log:    slog.Default().With("component", "dataset", "source", path),
	}
}

// FromReader returns a loader for an already opened source, such as the
// result of a file chooser. Sources that expose their file name are
// followed like Open.
func FromReader(rc io.ReadCloser) *Loader {
	if f, ok := rc.(interface{ Name() string }); ok {
		l := Open(f.Name())
		used := false
		l.open = func() (io.ReadCloser, error) {
			if !used {
				used = true
				return rc, nil
			}
			return os.Open(f.Name())
		}
		return l
	}
	return &Loader{
		name: "stream",
		open: func() (io.ReadCloser, error) { return rc, nil },
		log:  slog.Default().With("component", "dataset", "source", "stream"),
	}
}

// Name returns the source name.
func (l *Loader) Name() string { return l.name }

// Stream returns a channel of table snapshots. The first value arrives once
// the source has been read to its current end; later values follow file
// changes. The channel is closed when ctx is done or the source fails, and
// a failure is reported in the final table's Err.
func (l *Loader) Stream(ctx context.Context) <-chan Table {
	out := make(chan Table, 1)
	go func() {
		defer close(out)
		l.run(ctx, out)
	}()
	return out
}

func (l *Loader) run(ctx context.Context, out chan<- Table) {
	send := func(t Table) bool {
		select {
		case out <- t:
			return true
		case <-ctx.Done():
			return false
		}
	}
	fail := func(err error) {
		l.log.Error("dataset failed", "error", err)
		send(Table{Source: l.name, Err: err})
	}

	var watcher *fsnotify.Watcher
	if l.follow {
		var err error
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			fail(fmt.Errorf("failed creating file watcher: %w", err))
			return
		}
		defer watcher.Close()
		// Watching the directory survives editors that replace the file.
		if err := watcher.Add(filepath.Dir(l.name)); err != nil {
			fail(fmt.Errorf("failed watching %q: %w", l.name, err))
			return
		}
	}

	rc, err := l.open()
	if err != nil {
		fail(fmt.Errorf("failed opening source: %w", err))
		return
	}
	defer func() { rc.Close() }()
	p := newParser(rc, l.name, l.log)
	if _, err := p.readAvailable(); err != nil {
		fail(err)
		return
	}
	if !send(p.snapshot()) || !l.follow {
		return
	}

	target := filepath.Clean(l.name)
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.log.Error("file watcher error", "error", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			switch {
			case ev.Has(fsnotify.Write):
				added, err := p.readAvailable()
				if err != nil {
					fail(err)
					return
				}
				if added > 0 && !send(p.snapshot()) {
					return
				}
			case ev.Has(fsnotify.Create):
				l.log.Debug("source replaced, reloading")
				next, err := l.open()
				if err != nil {
					l.log.Error("failed reopening source", "error", err)
					continue
				}
				rc.Close()
				rc = next
				p = newParser(rc, l.name, l.log)
				if _, err := p.readAvailable(); err != nil {
					fail(err)
					return
				}
				if !send(p.snapshot()) {
					return
				}
			}
		}
	}
}
