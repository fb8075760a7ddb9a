// Package statuslog keeps the operator-visible event history: one
// "YYYY-mm-dd HH:MM:SS  message" line per launch or edit, appended to a text
// file next to the database.
package statuslog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp format of every status line.
const TimeLayout = "2006-01-02 15:04:05"

// Log appends events to a status file.
type Log struct {
	logger *zap.Logger
	file   *os.File
}

// Open opens (creating if needed) the status file at path for appending.
func Open(path string, opts ...zap.Option) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("status log: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("status log: %w", err)
	}
	cfg := zapcore.EncoderConfig{
		TimeKey:          "ts",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: "  ",
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(f), zapcore.InfoLevel)
	return &Log{logger: zap.New(core, opts...), file: f}, nil
}

// Nop returns a Log that discards every event.
func Nop() *Log {
	return &Log{logger: zap.NewNop()}
}

// Event appends one line. Fields are rendered after the message.
func (l *Log) Event(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.logger.Info(msg, fields...)
}

// Close flushes and closes the file.
func (l *Log) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = l.logger.Sync()
	return l.file.Close()
}

// Tail returns the last n lines of the file at path. A missing file has no
// lines.
func Tail(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	ring := make([]string, 0, n)
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	for s.Scan() {
		if len(ring) == n {
			ring = append(ring[:0], ring[1:]...)
		}
		ring = append(ring, s.Text())
	}
	return ring, s.Err()
}
