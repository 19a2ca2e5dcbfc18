package logger

import (
	"go.uber.org/zap"
)

// New creates a zap logger configured for the given environment.
// "development" yields a human-readable console logger; anything else
// yields production JSON output.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewNamed creates an environment-appropriate logger tagged with the service name.
func NewNamed(env, service string) (*zap.Logger, error) {
	log, err := New(env)
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
