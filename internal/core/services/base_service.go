package services

import (
	"context"
	"log/slog"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	PropertyAuthorizer portssvc.PropertyAuthorizerSvc
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

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// AuthorizeOwner checks that the property exists and belongs to ownerID.
func (s *BaseService) AuthorizeOwner(ctx context.Context, propertyID, ownerID string) (*domain.Property, error) {
	return s.PropertyAuthorizer.AuthorizeOwner(ctx, propertyID, ownerID)
}
