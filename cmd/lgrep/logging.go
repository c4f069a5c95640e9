package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/praetorian-inc/lgrep/pkg/config"
)

// setupLogging sends std log output to w and, when a log file is
// configured, to a rotating file as well. The returned closer releases the
// file.
func setupLogging(w io.Writer, cfg config.LogConfig) (io.Closer, error) {
	log.SetPrefix("")
	if cfg.File == "" {
		log.SetFlags(0)
		log.SetOutput(w)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	logger := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	log.SetFlags(log.LstdFlags)
	log.SetOutput(io.MultiWriter(w, logger))
	return logger, nil
}

// debugLogger writes [debug] lines when verbose output is on.
type debugLogger struct {
	enabled bool
}

func (l debugLogger) Log(format string, args ...interface{}) {
	if l.enabled {
		log.Printf("[debug] "+format, args...)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
