package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the process-wide logger. Init must be called before use.
var L *zap.Logger = zap.NewNop()

// Init builds the global logger. Production mode emits JSON at info level,
// anything else a colored console encoder at debug level.
func Init(env string) error {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return err
	}
	L = built
	zap.ReplaceGlobals(L)
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L.Sync()
}

// WithRequestID returns a logger annotated with the request id.
func WithRequestID(requestID string) *zap.Logger {
	return L.With(zap.String("request_id", requestID))
}
