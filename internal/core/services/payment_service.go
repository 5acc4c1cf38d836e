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

// paymentService appends rows to the two money ledgers. Ledger rows are never
// deleted; a completed row only ever changes status. Every write that can
// affect a balance drops the cached snapshot for the linked parties.
type paymentService struct {
	BaseService
	paymentRepo      portsrepo.PaymentRepository
	disbursementRepo portsrepo.DisbursementRepository
	balance          portssvc.BalanceSvcFacade
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepository, disbursementRepo portsrepo.DisbursementRepository, balance portssvc.BalanceSvcFacade) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:      paymentRepo,
		disbursementRepo: disbursementRepo,
		balance:          balance,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// validateStatusTransition enforces the ledger status machine: only pending
// rows settle, and they settle exactly once to completed, failed or
// cancelled. A settled row keeps its status forever.
func validateStatusTransition(current, next domain.TransactionStatus) error {
	if current != domain.StatusPending {
		return fmt.Errorf("cannot change status of a %s row: %w", current, apperrors.ErrValidation)
	}
	switch next {
	case domain.StatusCompleted, domain.StatusFailed, domain.StatusCancelled:
		return nil
	default:
		return fmt.Errorf("invalid target status %q: %w", next, apperrors.ErrValidation)
	}
}

func (s *paymentService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, userID string) (*domain.PaymentTransaction, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("transaction amount must be non-negative: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.PaymentTransaction{
		TransactionID: uuid.NewString(),
		Type:          req.Type,
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		PaymentMethod: req.PaymentMethod,
		Date:          req.Date,
		Status:        domain.StatusCompleted,
		OwnerID:       req.OwnerID,
		GuestID:       req.GuestID,
		PropertyID:    req.PropertyID,
		UnitID:        req.UnitID,
		ReservationID: req.ReservationID,
		InvoiceID:     req.InvoiceID,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.paymentRepo.SavePaymentTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save payment transaction")
		return nil, err
	}

	s.invalidateParties(ctx, txn.OwnerID, txn.GuestID)
	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)))
	return &txn, nil
}

func (s *paymentService) RecordDisbursement(ctx context.Context, req dto.RecordDisbursementRequest, userID string) (*domain.Disbursement, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("disbursement amount must be non-negative: %w", apperrors.ErrValidation)
	}
	if !domain.IsDisbursementType(req.Type) {
		return nil, fmt.Errorf("type %q is not an outbound movement: %w", req.Type, apperrors.ErrValidation)
	}

	now := time.Now()
	d := domain.Disbursement{
		DisbursementID: uuid.NewString(),
		Type:           req.Type,
		Amount:         req.Amount,
		CurrencyCode:   req.CurrencyCode,
		PaymentMethod:  req.PaymentMethod,
		Date:           req.Date,
		Status:         domain.StatusCompleted,
		OwnerID:        req.OwnerID,
		GuestID:        req.GuestID,
		PropertyID:     req.PropertyID,
		UnitID:         req.UnitID,
		ReservationID:  req.ReservationID,
		InvoiceID:      req.InvoiceID,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.disbursementRepo.SaveDisbursement(ctx, d); err != nil {
		s.LogError(ctx, err, "Failed to save disbursement")
		return nil, err
	}

	s.invalidateParties(ctx, d.OwnerID, d.GuestID)
	s.LogInfo(ctx, "Disbursement recorded",
		slog.String("disbursement_id", d.DisbursementID),
		slog.String("type", string(d.Type)))
	return &d, nil
}

func (s *paymentService) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string) error {
	txn, err := s.paymentRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := validateStatusTransition(txn.Status, status); err != nil {
		return err
	}
	if err := s.paymentRepo.UpdateTransactionStatus(ctx, transactionID, status, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to update transaction status", slog.String("transaction_id", transactionID))
		return err
	}
	s.invalidateParties(ctx, txn.OwnerID, txn.GuestID)
	return nil
}

func (s *paymentService) UpdateDisbursementStatus(ctx context.Context, disbursementID string, status domain.TransactionStatus, userID string) error {
	d, err := s.disbursementRepo.FindDisbursementByID(ctx, disbursementID)
	if err != nil {
		return err
	}
	if err := validateStatusTransition(d.Status, status); err != nil {
		return err
	}
	if err := s.disbursementRepo.UpdateDisbursementStatus(ctx, disbursementID, status, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to update disbursement status", slog.String("disbursement_id", disbursementID))
		return err
	}
	s.invalidateParties(ctx, d.OwnerID, d.GuestID)
	return nil
}

func (s *paymentService) ListTransactions(ctx context.Context, partyID string) ([]domain.PaymentTransaction, error) {
	return s.paymentRepo.ListTransactionsByParty(ctx, partyID)
}

func (s *paymentService) ListDisbursements(ctx context.Context, partyID string) ([]domain.Disbursement, error) {
	return s.disbursementRepo.ListDisbursementsByParty(ctx, partyID)
}

// invalidateParties drops cached balance snapshots for any party linked to a
// ledger row. Invalidation failure is a cache concern, not a ledger failure.
func (s *paymentService) invalidateParties(ctx context.Context, partyIDs ...string) {
	for _, id := range partyIDs {
		if id == "" {
			continue
		}
		if err := s.balance.InvalidateBalance(ctx, id); err != nil {
			s.LogWarn(ctx, "Failed to invalidate balance snapshot",
				slog.String("party_id", id),
				slog.String("error", err.Error()))
		}
	}
}
