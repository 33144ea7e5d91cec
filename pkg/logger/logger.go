package logger

import (
	"github.com/rmt1947/cov-swn/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the stderr logger at the configured LOG_LEVEL.
func New() (*zap.Logger, error) {
	level := viper.GetString(util.LOG_LEVEL)
	if level == "" {
		level = "info"
	}
	return NewWithLevel(level)
}

func NewWithLevel(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "unknown log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil

	return cfg.Build()
}
