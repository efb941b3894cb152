package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New создает JSON-логгер консоли с заданным уровнем
func New(logLevel string) *logrus.Logger {
	return newWithOutput(logLevel, os.Stdout)
}

// NewNop возвращает логгер, который ничего не пишет (для тестов)
func NewNop() *logrus.Logger {
	return newWithOutput("panic", io.Discard)
}

func newWithOutput(logLevel string, out io.Writer) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "message",
		},
	})
	log.SetOutput(out)

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
