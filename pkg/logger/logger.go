// Package logger configures the global zap logger the rest of the
// application reaches through zap.S().
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init builds the global logger. channel "file" writes rotated JSON logs to
// path via lumberjack; anything else writes console output to stderr.
func Init(level, channel, path string) {
	var core zapcore.Core

	switch channel {
	case "file":
		encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    50, // megabytes
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		})
		core = zapcore.NewCore(encoder, writer, parseLevel(level))
	default:
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder := zapcore.NewConsoleEncoder(encoderCfg)
		core = zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), parseLevel(level))
	}

	zap.ReplaceGlobals(zap.New(core, zap.AddCaller()))
}

func parseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}
