// Package logging builds the zap loggers handed to every conversion stage.
// Logs go to stderr unless a writer is given, so a document written to
// stdout stays clean.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with the run-scoped helpers used by the pipeline.
type Logger struct {
	*zap.Logger
}

// Config defines logger configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	// Writer receives log entries; nil means stderr.
	Writer io.Writer
}

// DefaultConfig logs info and above as JSON.
func DefaultConfig() Config {
	return Config{Level: "info"}
}

// DevelopmentConfig logs everything to a coloured console.
func DevelopmentConfig() Config {
	return Config{Level: "debug", Development: true}
}

// New builds a logger. Development loggers use a console encoder and record
// callers and stack traces on warnings; production loggers write JSON.
func New(cfg Config) (*Logger, error) {
	var level zapcore.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	core := zapcore.NewCore(encoder(cfg.Development), zapcore.Lock(zapcore.AddSync(w)), level)
	var opts []zap.Option
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	return &Logger{Logger: zap.New(core, opts...)}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// ForRun returns a child logger tagged with a conversion run id.
func (l *Logger) ForRun(runID string) *zap.Logger {
	return l.With(RunID(runID))
}

func RunID(id string) zap.Field        { return zap.String("run_id", id) }
func Model(label string) zap.Field     { return zap.String("model", label) }
func Command(command string) zap.Field { return zap.String("command", command) }
func Instance(name string) zap.Field   { return zap.String("instance", name) }

func encoder(development bool) zapcore.Encoder {
	if development {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.MessageKey = "message"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.MillisDurationEncoder
	return zapcore.NewJSONEncoder(ec)
}
