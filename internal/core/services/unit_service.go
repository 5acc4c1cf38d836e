package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portsrepo "github.com/propfolio/propfolio-backend/internal/core/ports/repositories"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
	"github.com/propfolio/propfolio-backend/internal/imagestore"
)

// unitService keeps units and their marketplace listings in lockstep. Every
// mutation writes the unit row and the listing row inside one transaction.
type unitService struct {
	BaseService
	unitRepo    portsrepo.UnitRepositoryWithTx
	listingRepo portsrepo.ListingRepository
	images      imagestore.Store
}

// NewUnitService creates a new unit service.
func NewUnitService(unitRepo portsrepo.UnitRepositoryWithTx, listingRepo portsrepo.ListingRepository, images imagestore.Store, authorizer portssvc.PropertyAuthorizerSvc) portssvc.UnitSvcFacade {
	return &unitService{
		BaseService: BaseService{PropertyAuthorizer: authorizer},
		unitRepo:    unitRepo,
		listingRepo: listingRepo,
		images:      images,
	}
}

var _ portssvc.UnitSvcFacade = (*unitService)(nil)

// listingTitle derives the marketplace title from the owning property and
// unit names.
func listingTitle(propertyName, unitName string) string {
	return propertyName + " - " + unitName
}

func (s *unitService) CreateUnit(ctx context.Context, req dto.CreateUnitRequest, ownerID string) (*domain.Unit, error) {
	property, err := s.AuthorizeOwner(ctx, req.PropertyID, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	mainPictureURL, additionalURLs, err := s.uploadImages(ctx, ownerID, property.PropertyID, req.Name, req.MainPicture, req.AdditionalPictures, now)
	if err != nil {
		return nil, err
	}

	unit := domain.Unit{
		UnitID:                uuid.NewString(),
		PropertyID:            property.PropertyID,
		Name:                  req.Name,
		Floor:                 req.Floor,
		PricePerNight:         req.PricePerNight,
		Bedrooms:              req.Bedrooms,
		Bathrooms:             req.Bathrooms,
		MaxGuests:             req.MaxGuests,
		Status:                domain.UnitVacant,
		IsVisible:             true,
		MainPictureURL:        mainPictureURL,
		AdditionalPictureURLs: additionalURLs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	listing := domain.Listing{
		ListingID:     uuid.NewString(),
		UnitID:        unit.UnitID,
		HostID:        ownerID,
		Title:         listingTitle(property.Name, unit.Name),
		Description:   req.Description,
		PricePerNight: unit.PricePerNight,
		Bedrooms:      unit.Bedrooms,
		Bathrooms:     unit.Bathrooms,
		Guests:        unit.MaxGuests,
		Address:       property.Address,
		City:          property.City,
		Country:       property.Country,
		ImageURL:      unit.MainPictureURL,
		IsActive:      true,
		IsVisible:     true,
		AuditFields:   unit.AuditFields,
	}

	tx, err := s.unitRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.unitRepo.Rollback(ctx, tx) }()

	if err := s.unitRepo.SaveUnitInTx(ctx, tx, unit); err != nil {
		s.LogError(ctx, err, "Failed to save unit", slog.String("property_id", property.PropertyID))
		return nil, err
	}
	if err := s.listingRepo.SaveListingInTx(ctx, tx, listing); err != nil {
		s.LogError(ctx, err, "Failed to save listing", slog.String("unit_id", unit.UnitID))
		return nil, err
	}
	if err := s.unitRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Unit created",
		slog.String("unit_id", unit.UnitID),
		slog.String("listing_id", listing.ListingID))
	return &unit, nil
}

func (s *unitService) UpdateUnit(ctx context.Context, unitID string, req dto.UpdateUnitRequest, ownerID string) (*domain.Unit, error) {
	unit, property, err := s.findOwnedUnit(ctx, unitID, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var replacedURLs []string

	if req.Name != nil {
		unit.Name = *req.Name
	}
	if req.Floor != nil {
		unit.Floor = *req.Floor
	}
	if req.PricePerNight != nil {
		unit.PricePerNight = *req.PricePerNight
	}
	if req.Bedrooms != nil {
		unit.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		unit.Bathrooms = *req.Bathrooms
	}
	if req.MaxGuests != nil {
		unit.MaxGuests = *req.MaxGuests
	}
	if req.Status != nil {
		unit.Status = *req.Status
	}
	if req.MainPicture != nil || len(req.AdditionalPictures) > 0 {
		if req.MainPicture != nil && unit.MainPictureURL != "" {
			replacedURLs = append(replacedURLs, unit.MainPictureURL)
		}
		if len(req.AdditionalPictures) > 0 {
			replacedURLs = append(replacedURLs, unit.AdditionalPictureURLs...)
		}
		mainURL, additionalURLs, err := s.uploadImages(ctx, ownerID, unit.PropertyID, unit.Name, req.MainPicture, req.AdditionalPictures, now)
		if err != nil {
			return nil, err
		}
		if req.MainPicture != nil {
			unit.MainPictureURL = mainURL
		}
		if len(req.AdditionalPictures) > 0 {
			unit.AdditionalPictureURLs = additionalURLs
		}
	}
	unit.LastUpdatedAt = now
	unit.LastUpdatedBy = ownerID

	listing, err := s.listingRepo.FindListingByUnitID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	listing.Title = listingTitle(property.Name, unit.Name)
	listing.PricePerNight = unit.PricePerNight
	listing.Bedrooms = unit.Bedrooms
	listing.Bathrooms = unit.Bathrooms
	listing.Guests = unit.MaxGuests
	listing.Address = property.Address
	listing.City = property.City
	listing.Country = property.Country
	listing.ImageURL = unit.MainPictureURL
	if req.Description != nil {
		listing.Description = *req.Description
	}
	listing.LastUpdatedAt = now
	listing.LastUpdatedBy = ownerID

	tx, err := s.unitRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.unitRepo.Rollback(ctx, tx) }()

	if err := s.unitRepo.UpdateUnitInTx(ctx, tx, *unit); err != nil {
		s.LogError(ctx, err, "Failed to update unit", slog.String("unit_id", unitID))
		return nil, err
	}
	// Visibility flags are untouched here; the listing keeps its state.
	if err := s.listingRepo.UpdateListingInTx(ctx, tx, *listing); err != nil {
		s.LogError(ctx, err, "Failed to update listing", slog.String("unit_id", unitID))
		return nil, err
	}
	if err := s.unitRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	if len(replacedURLs) > 0 {
		if err := s.images.Remove(ctx, replacedURLs); err != nil {
			s.LogWarn(ctx, "Failed to remove replaced images",
				slog.String("unit_id", unitID),
				slog.String("error", err.Error()))
		}
	}
	return unit, nil
}

// ToggleVisibility flips the unit's is_visible flag and mirrors the new state
// onto the listing's is_active and is_visible.
func (s *unitService) ToggleVisibility(ctx context.Context, unitID string, ownerID string) (*domain.Unit, error) {
	unit, _, err := s.findOwnedUnit(ctx, unitID, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newVisible := !unit.IsVisible

	tx, err := s.unitRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.unitRepo.Rollback(ctx, tx) }()

	if err := s.unitRepo.SetUnitVisibilityInTx(ctx, tx, unitID, newVisible, ownerID, now); err != nil {
		return nil, err
	}
	if err := s.listingRepo.SetListingStateInTx(ctx, tx, unitID, newVisible, newVisible, ownerID, now); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	unit.IsVisible = newVisible
	unit.LastUpdatedAt = now
	unit.LastUpdatedBy = ownerID
	s.LogInfo(ctx, "Unit visibility toggled",
		slog.String("unit_id", unitID),
		slog.Bool("visible", newVisible))
	return unit, nil
}

// SoftDeleteUnit marks the unit deleted and deactivates its listing. Deletion
// is terminal.
func (s *unitService) SoftDeleteUnit(ctx context.Context, unitID string, ownerID string) error {
	_, _, err := s.findOwnedUnit(ctx, unitID, ownerID)
	if err != nil {
		return err
	}

	now := time.Now()
	tx, err := s.unitRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.unitRepo.Rollback(ctx, tx) }()

	if err := s.unitRepo.SoftDeleteUnitInTx(ctx, tx, unitID, ownerID, now); err != nil {
		return err
	}
	if err := s.listingRepo.SetListingStateInTx(ctx, tx, unitID, false, false, ownerID, now); err != nil {
		return err
	}
	if err := s.unitRepo.Commit(ctx, tx); err != nil {
		return err
	}

	s.LogInfo(ctx, "Unit soft-deleted", slog.String("unit_id", unitID))
	return nil
}

func (s *unitService) GetUnit(ctx context.Context, unitID string, ownerID string) (*domain.Unit, error) {
	unit, _, err := s.findOwnedUnit(ctx, unitID, ownerID)
	return unit, err
}

func (s *unitService) ListUnits(ctx context.Context, propertyID string, ownerID string) ([]domain.Unit, error) {
	if _, err := s.AuthorizeOwner(ctx, propertyID, ownerID); err != nil {
		return nil, err
	}
	return s.unitRepo.ListUnitsByProperty(ctx, propertyID)
}

// findOwnedUnit loads a live unit and verifies the owner holds its property.
// Soft-deleted units are reported as not found.
func (s *unitService) findOwnedUnit(ctx context.Context, unitID string, ownerID string) (*domain.Unit, *domain.Property, error) {
	unit, err := s.unitRepo.FindUnitByID(ctx, unitID)
	if err != nil {
		return nil, nil, err
	}
	property, err := s.AuthorizeOwner(ctx, unit.PropertyID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if unit.IsDeleted {
		return nil, nil, apperrors.ErrNotFound
	}
	return unit, property, nil
}

// uploadImages uploads the main picture followed by the additional pictures in
// order, returning their public URLs.
func (s *unitService) uploadImages(ctx context.Context, ownerID, propertyID, unitName string, main *dto.ImageUpload, additional []dto.ImageUpload, now time.Time) (string, []string, error) {
	var mainURL string
	if main != nil {
		url, err := s.images.Upload(ctx, imagestore.ObjectPath(ownerID, propertyID, unitName, main.Name, now), main.Base64)
		if err != nil {
			return "", nil, fmt.Errorf("failed to upload main picture: %w", err)
		}
		mainURL = url
	}
	var additionalURLs []string
	for _, img := range additional {
		url, err := s.images.Upload(ctx, imagestore.ObjectPath(ownerID, propertyID, unitName, img.Name, now), img.Base64)
		if err != nil {
			return "", nil, fmt.Errorf("failed to upload additional picture %q: %w", img.Name, err)
		}
		additionalURLs = append(additionalURLs, url)
	}
	return mainURL, additionalURLs, nil
}
