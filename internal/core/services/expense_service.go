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

// expenseService books costs against properties.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepository
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepository, authorizer portssvc.PropertyAuthorizerSvc) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService: BaseService{PropertyAuthorizer: authorizer},
		expenseRepo: expenseRepo,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, ownerID string) (*domain.Expense, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("expense amount must be non-negative: %w", apperrors.ErrValidation)
	}
	if _, err := s.AuthorizeOwner(ctx, req.PropertyID, ownerID); err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		PropertyID:  req.PropertyID,
		ExpenseType: req.ExpenseType,
		Amount:      req.Amount,
		Date:        req.Date,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("property_id", req.PropertyID))
		return nil, err
	}
	return &expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, propertyID string, ownerID string) ([]domain.Expense, error) {
	if _, err := s.AuthorizeOwner(ctx, propertyID, ownerID); err != nil {
		return nil, err
	}
	return s.expenseRepo.ListExpensesByProperty(ctx, propertyID)
}
