// Package logging configures the process-wide logrus logger and hands out
// per-module entries.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"
)

// Options controls logger setup.
type Options struct {
	Level  string
	File   string
	JSON   bool
	Output io.Writer
}

// Setup configures the standard logrus logger. When File is set, output is
// appended to it; the returned closer must be called on shutdown.
func Setup(opts Options) (io.Closer, error) {
	level := log.WarnLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}
	log.SetLevel(level)

	if opts.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&nested.Formatter{
			HideKeys:        true,
			FieldsOrder:     []string{"module", "session"},
			TimestampFormat: "15:04:05.000",
			NoColors:        opts.File != "",
		})
	}

	var closer io.Closer = nopCloser{}
	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		closer = f
	case opts.Output != nil:
		log.SetOutput(opts.Output)
	default:
		log.SetOutput(os.Stderr)
	}

	return closer, nil
}

// For returns a logger entry tagged with the module name.
func For(module string) *log.Entry {
	return log.WithFields(log.Fields{
		"module": module,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
