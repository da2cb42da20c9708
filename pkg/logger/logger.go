package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const envLocal = "local"

// FileConfig enables an additional rotated JSON sink.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var (
	global   = zap.NewNop()
	globalMu sync.RWMutex
)

// SetupLogger builds the process logger and installs it as the package default.
func SetupLogger(env, level string, file *FileConfig) *zap.Logger {
	lvl := zap.NewAtomicLevelAt(parseLevel(level))

	var encoderCfg zapcore.EncoderConfig
	var consoleEncoder zapcore.Encoder
	if env == envLocal {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		consoleEncoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		consoleEncoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), lvl),
	}

	if file != nil && file.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   file.Path,
			MaxSize:    file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAge:     file.MaxAgeDays,
			Compress:   file.Compress,
		}
		fileEncoderCfg := zap.NewProductionEncoderConfig()
		fileEncoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderCfg), zapcore.AddSync(rotator), lvl))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(0)).With(zap.String("env", env))
	SetLogger(l)

	return l
}

// SetLogger replaces the package default and returns a function restoring the previous one.
func SetLogger(l *zap.Logger) func() {
	globalMu.Lock()
	prev := global
	global = l
	globalMu.Unlock()
	return func() { SetLogger(prev) }
}

func Logger() *zap.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

func Debug(msg string, fields ...zap.Field) {
	Logger().WithOptions(zap.AddCallerSkip(1)).Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger().WithOptions(zap.AddCallerSkip(1)).Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger().WithOptions(zap.AddCallerSkip(1)).Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger().WithOptions(zap.AddCallerSkip(1)).Error(msg, fields...)
}

// Sync flushes buffered entries; call before exit.
func Sync() {
	_ = Logger().Sync()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
