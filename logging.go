package voxmorph

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging seam for the engine. Everything in this module logs
// through it; the default backend is zap, tests use the no-op logger.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// FileLogConfig configures rotating file output.
type FileLogConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileLogConfig returns rotation settings suitable for a demo run.
func DefaultFileLogConfig(path string) FileLogConfig {
	return FileLogConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

type zapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// NewLogger builds a console logger named by prefix.
func NewLogger(prefix string, debug bool) Logger {
	return newZapLogger(prefix, debug, FileLogConfig{})
}

// NewFileLogger builds a logger that tees to the console and a rotating file.
func NewFileLogger(prefix string, debug bool, fileCfg FileLogConfig) Logger {
	return newZapLogger(prefix, debug, fileCfg)
}

func newZapLogger(prefix string, debug bool, fileCfg FileLogConfig) Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "name",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stdout), level),
	}

	if fileCfg.Path != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   fileCfg.Path,
			MaxSize:    fileCfg.MaxSizeMB,
			MaxBackups: fileCfg.MaxBackups,
			MaxAge:     fileCfg.MaxAgeDays,
			Compress:   fileCfg.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(fileWriter), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	if prefix != "" {
		logger = logger.Named(prefix)
	}
	return &zapLogger{sugar: logger.Sugar(), level: level}
}

func (l *zapLogger) DebugEnabled() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}

func (l *zapLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(zapcore.InfoLevel)
	}
}

func (l *zapLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *zapLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *zapLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *zapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

type nopLogger struct{}

// NewNopLogger returns a logger that discards everything. Handy in tests.
func NewNopLogger() Logger { return &nopLogger{} }

func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// LoggingModule installs a logger as an app resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
	File   string
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	var logger Logger
	if m.File != "" {
		logger = NewFileLogger(m.Prefix, m.Debug, DefaultFileLogConfig(m.File))
	} else {
		logger = NewLogger(m.Prefix, m.Debug)
	}
	cmd.AddResources(&loggerResource{Logger: logger})
}

// loggerResource wraps the Logger interface so the resource map can key it by
// a concrete type.
type loggerResource struct {
	Logger
}

// Logger returns the installed logger, or a no-op logger when none is.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(*loggerResource); ok {
			return l.Logger
		}
	}
	return NewNopLogger()
}
