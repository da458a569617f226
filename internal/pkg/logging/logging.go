package logging

import (
	"sync"

	"go.uber.org/zap"

	"github.com/formaflow/formaflow/internal/pkg/env"
)

var (
	logger *zap.Logger
	once   sync.Once
)

// Setup builds the process-wide zap logger. Development mode uses the
// human-readable console encoder, production emits JSON.
func Setup() *zap.Logger {
	once.Do(func() {
		var err error
		if env.IsDev() {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// GetLogger returns the shared logger, initializing it on first use.
func GetLogger() *zap.Logger {
	if logger == nil {
		return Setup()
	}
	return logger
}
