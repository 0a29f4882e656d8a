package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger представляет систему логирования
type Logger struct {
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	file          *os.File
}

// Глобальный экземпляр логгера
var globalLogger *Logger

// InitLogger инициализирует систему логирования
func InitLogger() error {
	// Создаем директорию для логов
	if err := os.MkdirAll("logs", 0755); err != nil {
		return fmt.Errorf("ошибка создания директории logs: %w", err)
	}

	// Создаем файл для логов с временной меткой
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join("logs", fmt.Sprintf("blockforge_%s.log", timestamp))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("ошибка создания файла логов: %w", err)
	}

	// Создаем логгеры
	consoleLogger := log.New(os.Stdout, "", log.LstdFlags)
	fileLogger := log.New(file, "", log.LstdFlags)

	globalLogger = &Logger{
		consoleLogger: consoleLogger,
		fileLogger:    fileLogger,
		file:          file,
	}

	return nil
}

// CloseLogger закрывает систему логирования
func CloseLogger() {
	if globalLogger != nil && globalLogger.file != nil {
		globalLogger.file.Close()
	}
}

// LogTrace логирует сообщение уровня TRACE
func LogTrace(format string, args ...interface{}) {
	logMessage(TRACE, format, args...)
}

// LogDebug логирует сообщение уровня DEBUG
func LogDebug(format string, args ...interface{}) {
	logMessage(DEBUG, format, args...)
}

// LogInfo логирует сообщение уровня INFO
func LogInfo(format string, args ...interface{}) {
	logMessage(INFO, format, args...)
}

// LogWarn логирует сообщение уровня WARN
func LogWarn(format string, args ...interface{}) {
	logMessage(WARN, format, args...)
}

// LogError логирует сообщение уровня ERROR
func LogError(format string, args ...interface{}) {
	logMessage(ERROR, format, args...)
}

// logMessage внутренняя функция для логирования
func logMessage(level LogLevel, format string, args ...interface{}) {
	if globalLogger == nil {
		return
	}

	message := fmt.Sprintf("[%s] %s", level.String(), fmt.Sprintf(format, args...))

	// Логируем в файл все уровни
	globalLogger.fileLogger.Println(message)

	// Логируем в консоль только INFO и выше
	if level >= INFO {
		globalLogger.consoleLogger.Println(message)
	}
}

// LogChunkCreated логирует генерацию чанка
func LogChunkCreated(cx, cz int) {
	LogDebug("Chunk created: (%d,%d)", cx, cz)
}

// LogChunkMeshed логирует перестройку меша чанка
func LogChunkMeshed(cx, cz int, faces int) {
	LogDebug("Chunk meshed: (%d,%d) with %d faces", cx, cz, faces)
}

// LogChunkUnloaded логирует выгрузку чанка
func LogChunkUnloaded(cx, cz int) {
	LogDebug("Chunk unloaded: (%d,%d)", cx, cz)
}

// LogMobSpawn логирует появление моба
func LogMobSpawn(entityID string, mobType string, x, y, z float64) {
	LogDebug("Mob spawned: %s (%s) at (%.1f,%.1f,%.1f)", entityID, mobType, x, y, z)
}

// LogDropSpawn логирует появление дропа
func LogDropSpawn(entityID string, blockName string, x, y, z float64) {
	LogTrace("Drop spawned: %s (%s) at (%.1f,%.1f,%.1f)", entityID, blockName, x, y, z)
}
