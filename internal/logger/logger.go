package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	L       *zap.Logger
	S       *zap.SugaredLogger
	logFile *os.File
)

// Init sets up the global logger. The terminal is in raw mode while the
// repl runs, so everything goes to a file: ~/.config/qrepl/qrepl.log unless
// QREPL_LOG_FILE points elsewhere.
func Init(debug bool) error {
	logPath, err := getLogPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}

	// Append across sessions; a repl run is short and old entries are the
	// interesting ones when debugging a crash.
	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		level,
	)

	L = zap.New(core, zap.AddCaller())
	S = L.Sugar()

	S.Infow("session started", "path", logPath, "debug", debug)
	return nil
}

// Close flushes buffered entries and releases the log file.
func Close() {
	if L != nil {
		_ = L.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
	}
}

func getLogPath() (string, error) {
	if v := os.Getenv("QREPL_LOG_FILE"); v != "" {
		return v, nil
	}
	if v := os.Getenv("QREPL_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qrepl.log"), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qrepl", "qrepl.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qrepl", "qrepl.log"), nil
}

// Package-level helpers so callers never have to nil-check before Init.

func Debug(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Debugw(msg, keysAndValues...)
	}
}

func Info(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Infow(msg, keysAndValues...)
	}
}

func Warn(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Warnw(msg, keysAndValues...)
	}
}

func Error(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Errorw(msg, keysAndValues...)
	}
}

func Fatal(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Fatalw(msg, keysAndValues...)
	}
}
