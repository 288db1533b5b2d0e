package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"courseplatform/internal/domain"
)

type LedgerUseCase struct {
	balances BalanceStore
	log      *zap.Logger
}

func NewLedgerUseCase(balances BalanceStore, log *zap.Logger) *LedgerUseCase {
	return &LedgerUseCase{balances: balances, log: log}
}

func (uc *LedgerUseCase) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	b, err := uc.balances.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return b.Amount, nil
}

// Credit пополняет баланс и возвращает новое значение.
func (uc *LedgerUseCase) Credit(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return uc.balances.Deposit(ctx, userID, amount)
}

// Debit списывает amount, если средств хватает. Нехватка средств —
// не исключительная ситуация, а обычный отказ: false без ошибки.
func (uc *LedgerUseCase) Debit(ctx context.Context, userID uuid.UUID, amount int) (bool, error) {
	if amount <= 0 {
		return false, domain.ErrInvalidAmount
	}
	ok, err := uc.balances.Withdraw(ctx, userID, amount)
	if err != nil {
		return false, err
	}
	if !ok {
		uc.log.Info("debit rejected: insufficient funds",
			zap.String("user_id", userID.String()),
			zap.Int("amount", amount))
	}
	return ok, nil
}
