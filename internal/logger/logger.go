package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Init builds the process-wide zap logger. Console output is always on; when
// file is non-empty, JSON logs are also written there with rotation.
func Init(environment string, file string) error {
	l, err := New(environment, file)
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(l)

	return nil
}

func New(environment string, file string) (*zap.Logger, error) {
	var (
		encoder zapcore.Encoder
		level   zapcore.Level
	)

	switch environment {
	case EnvDevelopment, "test", "":
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
		level = zap.DebugLevel
	case EnvProduction, "staging":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		level = zap.InfoLevel
	default:
		return nil, fmt.Errorf("unknown environment %q", environment)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	}

	if file != "" {
		rotator := zapcore.AddSync(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     7, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), rotator, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)), nil
}
