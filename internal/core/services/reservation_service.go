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
)

// reservationService records guest stays against units.
type reservationService struct {
	BaseService
	reservationRepo portsrepo.ReservationRepository
	unitRepo        portsrepo.UnitReader
}

// NewReservationService creates a new reservation service.
func NewReservationService(reservationRepo portsrepo.ReservationRepository, unitRepo portsrepo.UnitReader, authorizer portssvc.PropertyAuthorizerSvc) portssvc.ReservationSvcFacade {
	return &reservationService{
		BaseService:     BaseService{PropertyAuthorizer: authorizer},
		reservationRepo: reservationRepo,
		unitRepo:        unitRepo,
	}
}

var _ portssvc.ReservationSvcFacade = (*reservationService)(nil)

func (s *reservationService) CreateReservation(ctx context.Context, req dto.CreateReservationRequest, ownerID string) (*domain.Reservation, error) {
	if !req.CheckOutDate.After(req.CheckInDate) {
		return nil, fmt.Errorf("check-out must be after check-in: %w", apperrors.ErrValidation)
	}
	if req.TotalPrice.IsNegative() {
		return nil, fmt.Errorf("total price must be non-negative: %w", apperrors.ErrValidation)
	}

	unit, err := s.unitRepo.FindUnitByID(ctx, req.UnitID)
	if err != nil {
		return nil, err
	}
	if _, err := s.AuthorizeOwner(ctx, unit.PropertyID, ownerID); err != nil {
		return nil, err
	}
	if unit.IsDeleted {
		return nil, apperrors.ErrNotFound
	}

	status := req.PaymentStatus
	if status == "" {
		status = domain.ReservationPending
	}

	now := time.Now()
	reservation := domain.Reservation{
		ReservationID: uuid.NewString(),
		UnitID:        unit.UnitID,
		GuestID:       req.GuestID,
		GuestName:     req.GuestName,
		CheckInDate:   req.CheckInDate,
		CheckOutDate:  req.CheckOutDate,
		TotalPrice:    req.TotalPrice,
		PaymentStatus: status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.reservationRepo.SaveReservation(ctx, reservation); err != nil {
		s.LogError(ctx, err, "Failed to save reservation", slog.String("unit_id", unit.UnitID))
		return nil, err
	}

	s.LogInfo(ctx, "Reservation created",
		slog.String("reservation_id", reservation.ReservationID),
		slog.String("unit_id", unit.UnitID))
	return &reservation, nil
}

func (s *reservationService) ListReservations(ctx context.Context, unitID string, ownerID string) ([]domain.Reservation, error) {
	unit, err := s.unitRepo.FindUnitByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if _, err := s.AuthorizeOwner(ctx, unit.PropertyID, ownerID); err != nil {
		return nil, err
	}
	return s.reservationRepo.ListReservationsByUnit(ctx, unitID)
}
