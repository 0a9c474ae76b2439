// Package logging настраивает глобальный zerolog-логгер.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel разбирает уровень логирования (INFO, debug, warn...).
// Неизвестное значение даёт info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Setup настраивает глобальный логгер: JSON в production, консольный вывод иначе.
func Setup(level string, production bool) zerolog.Logger {
	var out io.Writer = os.Stdout
	if !production {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ParseLevel(level))

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}
