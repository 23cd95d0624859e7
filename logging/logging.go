// Package logging builds the file logger. The terminal belongs to the TUI,
// so nothing is ever written to stdout or stderr.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Path  string
	Debug bool
	// Rotation limits. Zero values use the defaults below.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns a JSON logger writing to a rotated file at opts.Path. An empty
// path yields a no-op logger.
func New(opts Options) *zap.Logger {
	if opts.Path == "" {
		return zap.NewNop()
	}
	rotator := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    orDefault(opts.MaxSizeMB, 10),
		MaxBackups: orDefault(opts.MaxBackups, 5),
		MaxAge:     orDefault(opts.MaxAgeDays, 30),
		Compress:   true,
	}
	level := zap.InfoLevel
	if opts.Debug {
		level = zap.DebugLevel
	}
	return zap.New(zapcore.NewCore(Encoder(), zapcore.AddSync(rotator), level), zap.AddCaller())
}

// Encoder is the JSON encoder shared by every core.
func Encoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger { return zap.NewNop() }

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
