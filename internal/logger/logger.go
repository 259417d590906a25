package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "bakery-be"

var log *zap.Logger

// Init replaces the global logger with one built for env.
func Init(env string) {
	l, err := New(env)
	if err != nil {
		panic(err)
	}
	log = l
}

// New builds a logger for env tagged with the service and environment. The
// tags are attached after opts, so a zap.WrapCore option still receives them.
func New(env string, opts ...zap.Option) (*zap.Logger, error) {
	opts = append(opts, zap.Fields(
		zap.String("service", serviceName),
		zap.String("env", envName(env)),
	))
	return configFor(env).Build(opts...)
}

func configFor(env string) zap.Config {
	switch envName(env) {
	case "production":
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		return cfg
	case "test":
		// Tests only surface warnings and above.
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.DisableStacktrace = true
		return cfg
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}
}

func envName(env string) string {
	if env == "" {
		return "development"
	}
	return env
}

// L returns the global logger, building it from APP_ENV on first use.
func L() *zap.Logger {
	if log == nil {
		Init(os.Getenv("APP_ENV"))
	}
	return log
}

func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
