package daemon

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"

	"github.com/karimwahba/groclist/internal/logging"
)

// defaultMaxLogSize is the rotation threshold for the daemon log file.
const defaultMaxLogSize int64 = 5 * 1024 * 1024

// FileLogger routes daemon logging to a file under the XDG state
// directory, with single-backup rotation.
type FileLogger struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// NewFileLogger opens the daemon log file and points the structured
// logger at it.
func NewFileLogger(debug bool) (*FileLogger, error) {
	logPath := GetLogPath()

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logging.Init(logging.Config{
		Level:  level,
		Output: file,
	})

	return &FileLogger{
		file: file,
		path: logPath,
	}, nil
}

// Path returns the log file path.
func (l *FileLogger) Path() string {
	return l.path
}

// Close closes the log file and restores logging to stderr.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	logging.Init(logging.Config{Level: slog.LevelInfo, Output: os.Stderr})

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Rotate rotates the log file when it exceeds maxSize bytes. The previous
// log is kept as a single ".old" backup.
func (l *FileLogger) Rotate(maxSize int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < maxSize {
		return nil
	}

	l.file.Close()

	backupPath := l.path + ".old"
	os.Remove(backupPath)
	if err := os.Rename(l.path, backupPath); err != nil {
		return err
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	l.file = file
	logging.Init(logging.Config{Level: slog.LevelInfo, Output: file})

	return nil
}

// GetLogDir returns the directory containing the daemon's log files.
func GetLogDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}
