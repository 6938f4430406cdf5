package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// RunLog is a logger whose events go to both the console and a persisted
// run log file.
type RunLog struct {
	*logrus.Logger
	// Path is the persisted log file location
	Path string
	file *os.File
}

// Setup creates a run logger writing the same events to stdout and to a
// timestamped log file under dir, creating dir as needed.
func Setup(dir string, debug bool) (*RunLog, error) {
	return setupFile(dir, debug, true)
}

// SetupFileOnly creates a run logger writing only to the log file, for
// runs where the console belongs to the TUI.
func SetupFileOnly(dir string, debug bool) (*RunLog, error) {
	return setupFile(dir, debug, false)
}

func setupFile(dir string, debug bool, console bool) (*RunLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("loudsync_%s.log", time.Now().Format("20060102_150405")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := newLogger(debug)
	if console {
		logger.SetOutput(io.MultiWriter(os.Stdout, file))
	} else {
		logger.SetOutput(file)
	}

	return &RunLog{Logger: logger, Path: path, file: file}, nil
}

// Close flushes and closes the persisted log file.
func (l *RunLog) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Console creates a logger that writes to stdout only, for commands that
// do not persist a run log.
func Console(debug bool) *logrus.Logger {
	return newLogger(debug)
}

func newLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
