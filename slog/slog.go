// Package slog wraps the domain services with log/slog decorators.
// Each decorator logs one debug record per call with its duration and error.
package slog
