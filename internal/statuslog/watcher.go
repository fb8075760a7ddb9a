package statuslog

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPoll is the fallback re-read interval used when Watcher.Poll is not
// positive.
const DefaultPoll = time.Second

// Watcher follows a status file and emits lines appended after it was
// created. Truncating or replacing the file restarts reading from the top.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	lines   chan string
	offset  int64
	partial string
	// file identifies the file offset belongs to; nil when none was seen.
	file os.FileInfo

	// Poll is a fallback re-read interval for filesystems that drop events.
	Poll time.Duration
}

// NewWatcher starts watching the directory holding path. Reading begins at
// the current end of the file.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w := &Watcher{path: path, fsw: fsw, lines: make(chan string, 64), Poll: DefaultPoll}
	if fi, err := os.Stat(path); err == nil {
		w.offset, w.file = fi.Size(), fi
	}
	return w, nil
}

// Lines delivers complete lines without their newline. It is closed when Run
// returns.
func (w *Watcher) Lines() <-chan string { return w.lines }

// Run blocks until ctx is done or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.lines)
	defer func() { _ = w.fsw.Close() }()

	interval := w.Poll
	if interval <= 0 {
		interval = DefaultPoll
	}
	poll := time.NewTicker(interval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			switch {
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.reset(nil)
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				if !w.readNew(ctx) {
					return nil
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return err

		case <-poll.C:
			if !w.readNew(ctx) {
				return nil
			}
		}
	}
}

func (w *Watcher) reset(fi os.FileInfo) {
	w.offset, w.partial, w.file = 0, "", fi
}

// readNew emits whatever was appended since the last read. A different file
// at the path (an atomic rename over it) or a shorter one is read from the
// top. It reports false when ctx ended while a line was pending.
func (w *Watcher) readNew(ctx context.Context) bool {
	fi, err := os.Stat(w.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			w.reset(nil)
		}
		return true
	}
	if w.file == nil || !os.SameFile(w.file, fi) || fi.Size() < w.offset {
		w.reset(fi)
	}
	if fi.Size() == w.offset {
		return true
	}

	f, err := os.Open(w.path)
	if err != nil {
		return true
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Seek(w.offset, io.SeekStart); err != nil {
		return true
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return true
	}
	w.offset += int64(len(data))

	chunk := w.partial + string(data)
	parts := strings.Split(chunk, "\n")
	w.partial = parts[len(parts)-1]
	for _, line := range parts[:len(parts)-1] {
		select {
		case w.lines <- strings.TrimRight(line, "\r"):
		case <-ctx.Done():
			return false
		}
	}
	return true
}
