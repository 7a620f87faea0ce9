package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger opens the log sink named by path ("stdout", "stderr" or a file,
// which is appended to) and returns a console logger writing to it. The
// sink is returned too, so that reports can be written next to the log.
func newLogger(path string, verbose bool) (*zap.Logger, zapcore.WriteSyncer,
	func(), error) {

	sink, closeSink, err := zap.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("Could not open log '%s': %w",
			path, err)
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), sink, level)
	return zap.New(core), sink, closeSink, nil
}
