package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger структурный логгер поверх zerolog.
// Каждая запись помечается компонентом, который её пишет.
type Logger struct {
	zl zerolog.Logger
}

// New создаёт логгер, пишущий JSON в writer.
// Неизвестный уровень заменяется на info.
func New(writer io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zl := zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return &Logger{zl: zl}
}

// NewConsole создаёт логгер с человекочитаемым выводом в stderr
func NewConsole(level string) *Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

// Nop логгер, который ничего не пишет
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Info(component, message string, fields map[string]interface{}) {
	l.write(l.zl.Info(), component, fields).Msg(message)
}

func (l *Logger) Warning(component, message string, fields map[string]interface{}) {
	l.write(l.zl.Warn(), component, fields).Msg(message)
}

func (l *Logger) Debug(component, message string, fields map[string]interface{}) {
	l.write(l.zl.Debug(), component, fields).Msg(message)
}

func (l *Logger) Error(component string, err error, fields map[string]interface{}) {
	l.write(l.zl.Error(), component, fields).Err(err).Msg("operation failed")
}

func (l *Logger) write(event *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	event = event.Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	return event
}
