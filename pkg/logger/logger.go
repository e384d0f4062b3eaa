package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Init инициализирует глобальный логгер из переменных окружения.
// Вызывается один раз при старте (main.go, TestMain).
func Init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	Configure(logLevel, os.Getenv("LOG_FORMAT"))
}

// Configure применяет уровень и формат (из конфига). Пустые значения оставляют текущие.
func Configure(levelName, format string) {
	if Log == nil {
		Log = logrus.New()
		Log.SetOutput(os.Stdout)
	}

	if levelName != "" {
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			level = logrus.InfoLevel
		}
		Log.SetLevel(level)
	}

	switch strings.ToLower(format) {
	case "json":
		Log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   format == "",
		})
	}
}

// Silence глушит вывод (бенчмарки и шумные тесты).
func Silence() {
	if Log == nil {
		Init()
	}
	Log.SetOutput(io.Discard)
}
