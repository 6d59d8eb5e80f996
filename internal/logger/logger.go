package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LogLevel представляет уровень логирования
type LogLevel string

const (
	DEBUG LogLevel = "DEBUG"
	INFO  LogLevel = "INFO"
	ERROR LogLevel = "ERROR"
)

// LoggerManager пишет логи одновременно в консоль и в файл
type LoggerManager struct {
	file   *os.File
	logger zerolog.Logger
}

// NewLoggerManager создает новый экземпляр LoggerManager
func NewLoggerManager(logFilePath string) (*LoggerManager, error) {
	// Создаем директорию для логов, если её нет
	logDir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории для логов: %w", err)
	}

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла логов: %w", err)
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
	return &LoggerManager{
		file:   file,
		logger: newLogger(zerolog.MultiLevelWriter(console, file)),
	}, nil
}

// NewWriterLogger пишет только в переданный writer (без файла)
func NewWriterLogger(w io.Writer) *LoggerManager {
	return &LoggerManager{logger: newLogger(w)}
}

// NewNopLogger возвращает логгер, который ничего не пишет
func NewNopLogger() *LoggerManager {
	return &LoggerManager{logger: zerolog.Nop()}
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Component возвращает дочерний логгер с полем feature.
// Файл при этом общий, закрывать его должен только корневой логгер.
func (l *LoggerManager) Component(name string) *LoggerManager {
	return &LoggerManager{logger: l.logger.With().Str("feature", name).Logger()}
}

// Close закрывает файл логов
func (l *LoggerManager) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *LoggerManager) logWithLevel(level LogLevel, format string, args ...interface{}) {
	switch level {
	case DEBUG:
		l.logger.Debug().Msgf(format, args...)
	case ERROR:
		l.logger.Error().Msgf(format, args...)
	default:
		l.logger.Info().Msgf(format, args...)
	}
}

// Debug записывает отладочное сообщение
func (l *LoggerManager) Debug(format string, args ...interface{}) {
	l.logWithLevel(DEBUG, format, args...)
}

// Info записывает информационное сообщение
func (l *LoggerManager) Info(format string, args ...interface{}) {
	l.logWithLevel(INFO, format, args...)
}

// Error записывает сообщение об ошибке
func (l *LoggerManager) Error(format string, args ...interface{}) {
	l.logWithLevel(ERROR, format, args...)
}

// LogError записывает ошибку с дополнительной информацией
func (l *LoggerManager) LogError(err error, context string) {
	if err != nil {
		l.logger.Error().Err(err).Msg(context)
	}
}
