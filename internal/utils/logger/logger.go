package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"iotracker/internal/app/server/config"
)

// New создает логгер под окружение: цветной вывод для local, текст для dev, JSON для prod.
// Непустой level переопределяет уровень окружения.
func New(env, level string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvDev:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: levelOr(level, slog.LevelDebug)}))
	case config.EnvProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelOr(level, slog.LevelInfo)}))
	default:
		log = setupPrettySlog(levelOr(level, slog.LevelDebug))
	}

	return log
}

func setupPrettySlog(level slog.Level) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: level},
	}

	return slog.New(opts.NewPrettyHandler(os.Stdout))
}

func levelOr(level string, def slog.Level) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}
