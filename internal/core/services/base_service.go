package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	"github.com/SscSPs/taskmgr_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now func() time.Time
}

// Option customises a service at construction time.
type Option func(*BaseService)

// WithClock replaces the wall clock used for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(s *BaseService) {
		if now != nil {
			s.now = now
		}
	}
}

func newBaseService(opts ...Option) BaseService {
	s := BaseService{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Now returns the current time according to the service clock.
func (s *BaseService) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// classify is applied at every flow boundary. Client-correctable AppErrors pass
// through unchanged; anything else is logged in full and replaced by an opaque
// internal error.
func (s *BaseService) classify(ctx context.Context, err error, msg string, keyvals ...any) error {
	if err == nil {
		return nil
	}
	if !apperrors.IsInternal(err) {
		return err
	}
	s.LogError(ctx, err, msg, keyvals...)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message == apperrors.InternalErrorMessage {
		return err
	}
	return apperrors.NewInternalError(err)
}

type result[T any] struct {
	val T
	err error
}

// runWithContext runs a CPU-bound call off the request goroutine and gives up
// once ctx is done. The abandoned call finishes in the background and is never retried.
func runWithContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("aborted before start: %w", err)
	}

	done := make(chan result[T], 1)
	go func() {
		v, err := fn()
		done <- result[T]{val: v, err: err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return zero, fmt.Errorf("aborted: %w", ctx.Err())
	}
}
