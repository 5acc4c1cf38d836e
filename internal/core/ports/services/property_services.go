package services

import (
	"context"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// PropertyAuthorizerSvc verifies that a property belongs to the acting owner.
// Unit and statement operations run this check before any write.
type PropertyAuthorizerSvc interface {
	// AuthorizeOwner returns ErrNotFound if the property does not exist and
	// ErrForbidden if it belongs to someone else.
	AuthorizeOwner(ctx context.Context, propertyID string, ownerID string) (*domain.Property, error)
}

// PropertySvcFacade exposes property CRUD plus the ownership check.
type PropertySvcFacade interface {
	PropertyAuthorizerSvc

	CreateProperty(ctx context.Context, req dto.CreatePropertyRequest, ownerID string) (*domain.Property, error)
	GetProperty(ctx context.Context, propertyID string, ownerID string) (*domain.Property, error)
	ListProperties(ctx context.Context, ownerID string) ([]domain.Property, error)
	UpdateProperty(ctx context.Context, propertyID string, req dto.UpdatePropertyRequest, ownerID string) (*domain.Property, error)
}
