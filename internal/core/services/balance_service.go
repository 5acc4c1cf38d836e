package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portsrepo "github.com/propfolio/propfolio-backend/internal/core/ports/repositories"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
)

const defaultCurrencyCode = "USD"

// balanceService derives owner balances from the two ledgers and caches the
// snapshot in redis. The ledgers stay authoritative; a stale or missing cache
// entry only costs a recomputation.
type balanceService struct {
	BaseService
	paymentRepo      portsrepo.PaymentRepository
	disbursementRepo portsrepo.DisbursementRepository
	cache            *redis.Client
	cacheTTL         time.Duration
}

// NewBalanceService creates a new balance service.
func NewBalanceService(paymentRepo portsrepo.PaymentRepository, disbursementRepo portsrepo.DisbursementRepository, cache *redis.Client, cacheTTL time.Duration) portssvc.BalanceSvcFacade {
	return &balanceService{
		paymentRepo:      paymentRepo,
		disbursementRepo: disbursementRepo,
		cache:            cache,
		cacheTTL:         cacheTTL,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func balanceCacheKey(ownerID string) string {
	return "balance:" + ownerID
}

// ComputeBalance recomputes the balance from the ledgers. Only completed rows
// count: payment_received adds, every other movement subtracts.
func (s *balanceService) ComputeBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	txns, err := s.paymentRepo.ListCompletedTransactionsByParty(ctx, ownerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load completed transactions: %w", err)
	}
	disbursements, err := s.disbursementRepo.ListCompletedDisbursementsByParty(ctx, ownerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load completed disbursements: %w", err)
	}

	// The repositories filter on status in SQL; the fold re-checks so a
	// pending or failed row can never move the balance.
	balance := decimal.Zero
	for _, t := range txns {
		if t.Status != domain.StatusCompleted {
			continue
		}
		switch {
		case t.Type == domain.PaymentReceived:
			balance = balance.Add(t.Amount)
		default:
			// charge and any outbound movement booked on this ledger
			balance = balance.Sub(t.Amount)
		}
	}
	for _, d := range disbursements {
		if d.Status != domain.StatusCompleted {
			continue
		}
		balance = balance.Sub(d.Amount)
	}
	return balance, nil
}

// GetBalance returns the cached snapshot, recomputing on a miss. Cache errors
// degrade to a recomputation.
func (s *balanceService) GetBalance(ctx context.Context, ownerID string) (*domain.OwnerBalance, error) {
	if s.cache != nil {
		payload, err := s.cache.Get(ctx, balanceCacheKey(ownerID)).Bytes()
		if err == nil {
			var snapshot domain.OwnerBalance
			if err := json.Unmarshal(payload, &snapshot); err == nil {
				return &snapshot, nil
			}
			s.LogWarn(ctx, "Discarding unreadable balance snapshot", slog.String("owner_id", ownerID))
		} else if !errors.Is(err, redis.Nil) {
			s.LogWarn(ctx, "Balance cache read failed",
				slog.String("owner_id", ownerID),
				slog.String("error", err.Error()))
		}
	}

	balance, err := s.ComputeBalance(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.OwnerBalance{
		OwnerID:        ownerID,
		CurrentBalance: balance,
		CurrencyCode:   defaultCurrencyCode,
		LastUpdated:    time.Now(),
	}

	if s.cache != nil {
		payload, err := json.Marshal(snapshot)
		if err == nil {
			if err := s.cache.Set(ctx, balanceCacheKey(ownerID), payload, s.cacheTTL).Err(); err != nil {
				s.LogWarn(ctx, "Balance cache write failed",
					slog.String("owner_id", ownerID),
					slog.String("error", err.Error()))
			}
		}
	}
	return snapshot, nil
}

// InvalidateBalance drops the cached snapshot after a ledger write.
func (s *balanceService) InvalidateBalance(ctx context.Context, ownerID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Del(ctx, balanceCacheKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate balance snapshot: %w", err)
	}
	return nil
}
