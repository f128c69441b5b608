package logging

import "go.uber.org/zap"

// New creates a sugared logger tagged with the component name, so
// background workers log under their own name instead of the request
// logger's.
func New(component string) *zap.SugaredLogger {
	logger, _ := zap.NewProduction()
	return logger.Sugar().With("component", component)
}
