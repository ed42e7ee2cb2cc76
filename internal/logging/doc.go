// Package logging provides the logr loggers used across the module,
// backed by zap.
package logging
