package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	standardOutputPath = "stdout"
	standardErrorPath  = "stderr"
)

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
// Messages go to standard output without timestamps, levels, or callers so that progress
// and status lines read as plain text.
func NewApplicationLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.Sampling = nil
	config.OutputPaths = []string{standardOutputPath}
	config.ErrorOutputPaths = []string{standardErrorPath}
	config.EncoderConfig = newConsoleEncoderConfig()
	return config.Build()
}

// NewConsoleLogger builds a logger with the application encoder writing to the provided sink.
func NewConsoleLogger(sink zapcore.WriteSyncer, level zapcore.LevelEnabler) *zap.Logger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(newConsoleEncoderConfig()), sink, level)
	return zap.New(core)
}

func newConsoleEncoderConfig() zapcore.EncoderConfig {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.TimeKey = ""
	encoderConfig.LevelKey = ""
	encoderConfig.NameKey = ""
	encoderConfig.CallerKey = ""
	encoderConfig.MessageKey = "message"
	encoderConfig.StacktraceKey = ""
	return encoderConfig
}
