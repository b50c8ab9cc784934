package log

import (
	"os"
	"path/filepath"
	"time"

	zaplogfmt "github.com/jsternberg/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = &ZapLogger{}

// ZapLogger is a Logger backed by Uber's zap.
type ZapLogger struct {
	lg *zap.SugaredLogger
}

// Config configures the ZapLogger. Fields carry env tags so the
// struct can be read with cleanenv by embedding applications.
type Config struct {
	Format string `env:"LOG_FORMAT" env-default:"console"` // console, logfmt or json
	Level  Level  `env:"LOG_LEVEL" env-default:"info"`     // debug, info, warn, error, fatal
	Output string `env:"LOG_OUTPUT" env-default:"stderr"`  // stderr, stdout or file path
}

// NewZapLogger creates a ZapLogger with the given configuration.
// Extra write syncers can be provided to duplicate output, which is
// handy for capturing logs in tests.
func NewZapLogger(conf Config, extraWriters ...zapcore.WriteSyncer) Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.UTC().Format(time.RFC3339))
	}

	var encoder zapcore.Encoder
	switch conf.Format {
	case "logfmt":
		encoder = zaplogfmt.NewEncoder(encCfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(encCfg)
	default:
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	var ws zapcore.WriteSyncer
	switch conf.Output {
	case "", "stderr":
		ws = zapcore.Lock(os.Stderr)
	case "stdout":
		ws = zapcore.Lock(os.Stdout)
	default:
		// Open the specified file; fall back to stderr on error.
		err1 := os.MkdirAll(filepath.Dir(conf.Output), 0755)
		file, err2 := os.OpenFile(conf.Output, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err1 != nil || err2 != nil {
			ws = zapcore.Lock(os.Stderr)
		} else {
			ws = zapcore.AddSync(file)
		}
	}
	wss := zapcore.NewMultiWriteSyncer(append(extraWriters, ws)...)

	core := zapcore.NewCore(encoder, wss, toZapLogLevel(conf.Level))
	// AddCallerSkip(2) skips the wrapper methods below in the call stack.
	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).Sugar()

	return &ZapLogger{lg: zl}
}

// Debug logs a message at debug level.
func (l *ZapLogger) Debug(msg string, keysAndValues ...any) {
	l.log(LevelDebug, msg, keysAndValues...)
}

// Info logs a message at info level.
func (l *ZapLogger) Info(msg string, keysAndValues ...any) {
	l.log(LevelInfo, msg, keysAndValues...)
}

// Warn logs a message at warn level.
func (l *ZapLogger) Warn(msg string, keysAndValues ...any) {
	l.log(LevelWarn, msg, keysAndValues...)
}

// Error logs a message at error level.
func (l *ZapLogger) Error(msg string, keysAndValues ...any) {
	l.log(LevelError, msg, keysAndValues...)
}

// Fatal logs a message at fatal level and exits.
func (l *ZapLogger) Fatal(msg string, keysAndValues ...any) {
	l.log(LevelFatal, msg, keysAndValues...)
}

func (l *ZapLogger) log(level Level, msg string, keysAndValues ...any) {
	l.lg.Logw(toZapLogLevel(level), msg, keysAndValues...)
}

// WithKV returns a logger with the key-value pair added to all future messages.
func (l *ZapLogger) WithKV(key string, value any) Logger {
	return &ZapLogger{lg: l.lg.With(key, value)}
}

// WithName returns a logger with the given name appended to the
// dot-separated logger hierarchy.
func (l *ZapLogger) WithName(name string) Logger {
	return &ZapLogger{lg: l.lg.Named(name)}
}

// Name returns the current name of the logger.
func (l *ZapLogger) Name() string {
	return l.lg.Desugar().Name()
}

func toZapLogLevel(logLevel Level) zapcore.Level {
	switch logLevel {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
