package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func Init(serviceName string, level string) {
	initWith(serviceName, level, os.Stdout)
}

// InitWithWriter используется в тестах для перехвата вывода логов
func InitWithWriter(serviceName string, level string, w io.Writer) {
	initWith(serviceName, level, w)
}

// InitConsole включает человекочитаемый вывод для локальной разработки
func InitConsole(serviceName string, level string) {
	initWith(serviceName, level, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
}

func initWith(serviceName string, level string, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	log = zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

func With() zerolog.Context {
	return log.With()
}
