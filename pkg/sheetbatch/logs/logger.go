// Package logs builds the structured logger shared by the CLI and the
// transports.
package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Config selects the log handlers.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string
	// Terminal receives human readable text records. Nil disables it.
	Terminal io.Writer
	// File receives JSON records. Nil disables it.
	File io.Writer
	// Journal also sends records to the systemd journal.
	Journal bool
}

// ParseLevel converts a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// New builds a logger fanning records out to every configured handler.
func New(cfg Config) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler

	var terminalHandler slog.Handler
	if cfg.Terminal != nil {
		terminalHandler = slog.NewTextHandler(cfg.Terminal, opts)
		handlers = append(handlers, terminalHandler)
	}

	if cfg.File != nil {
		handlers = append(handlers, slog.NewJSONHandler(cfg.File, opts))
	}

	if cfg.Journal {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if terminalHandler != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
				record.Add("error", err)
				_ = terminalHandler.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler), nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), nil
}

// toJournalKey maps an attribute key to the journal field charset.
func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}
