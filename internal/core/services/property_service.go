package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portsrepo "github.com/propfolio/propfolio-backend/internal/core/ports/repositories"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// propertyService provides property CRUD and the ownership check used by the
// unit and statement services.
type propertyService struct {
	BaseService
	propertyRepo      portsrepo.PropertyRepository
	defaultFeePercent decimal.Decimal
}

// NewPropertyService creates a new property service. defaultFeePercent applies
// to properties created without an explicit fee override.
func NewPropertyService(repo portsrepo.PropertyRepository, defaultFeePercent decimal.Decimal) portssvc.PropertySvcFacade {
	return &propertyService{propertyRepo: repo, defaultFeePercent: defaultFeePercent}
}

var _ portssvc.PropertySvcFacade = (*propertyService)(nil)

// AuthorizeOwner returns the property when it exists and belongs to ownerID.
func (s *propertyService) AuthorizeOwner(ctx context.Context, propertyID string, ownerID string) (*domain.Property, error) {
	property, err := s.propertyRepo.FindPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		s.LogWarn(ctx, "Property access denied",
			slog.String("property_id", propertyID),
			slog.String("user_id", ownerID))
		return nil, apperrors.ErrForbidden
	}
	return property, nil
}

func (s *propertyService) CreateProperty(ctx context.Context, req dto.CreatePropertyRequest, ownerID string) (*domain.Property, error) {
	feePercent := s.defaultFeePercent
	if req.ManagementFeePercent != nil {
		feePercent = *req.ManagementFeePercent
	}
	if feePercent.IsNegative() || feePercent.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("management fee percent must be between 0 and 1: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	property := domain.Property{
		PropertyID:           uuid.NewString(),
		OwnerID:              ownerID,
		Name:                 req.Name,
		Address:              req.Address,
		City:                 req.City,
		Country:              req.Country,
		ManagementFeePercent: feePercent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.propertyRepo.SaveProperty(ctx, property); err != nil {
		s.LogError(ctx, err, "Failed to save property", slog.String("owner_id", ownerID))
		return nil, err
	}

	s.LogInfo(ctx, "Property created",
		slog.String("property_id", property.PropertyID),
		slog.String("owner_id", ownerID))
	return &property, nil
}

func (s *propertyService) GetProperty(ctx context.Context, propertyID string, ownerID string) (*domain.Property, error) {
	return s.AuthorizeOwner(ctx, propertyID, ownerID)
}

func (s *propertyService) ListProperties(ctx context.Context, ownerID string) ([]domain.Property, error) {
	return s.propertyRepo.ListPropertiesByOwner(ctx, ownerID)
}

func (s *propertyService) UpdateProperty(ctx context.Context, propertyID string, req dto.UpdatePropertyRequest, ownerID string) (*domain.Property, error) {
	property, err := s.AuthorizeOwner(ctx, propertyID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		property.Name = *req.Name
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.Country != nil {
		property.Country = *req.Country
	}
	if req.ManagementFeePercent != nil {
		if req.ManagementFeePercent.IsNegative() || req.ManagementFeePercent.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("management fee percent must be between 0 and 1: %w", apperrors.ErrValidation)
		}
		property.ManagementFeePercent = *req.ManagementFeePercent
	}
	property.LastUpdatedAt = time.Now()
	property.LastUpdatedBy = ownerID

	if err := s.propertyRepo.UpdateProperty(ctx, *property); err != nil {
		s.LogError(ctx, err, "Failed to update property", slog.String("property_id", propertyID))
		return nil, err
	}
	return property, nil
}
