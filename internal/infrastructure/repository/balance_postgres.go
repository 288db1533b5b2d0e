package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"courseplatform/internal/domain"
)

type BalanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

func (r *BalanceRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Balance, error) {
	var b domain.Balance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	return &b, err
}

func (r *BalanceRepository) Deposit(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	var newAmount int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Balance
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		newAmount = b.Amount + amount
		return tx.Model(&domain.Balance{}).
			Where("user_id = ?", userID).
			Update("amount", newAmount).Error
	})
	return newAmount, err
}

// Withdraw списывает amount, если средств хватает. Строка баланса
// блокируется до конца транзакции, два параллельных списания не
// прочитают одно и то же значение.
func (r *BalanceRepository) Withdraw(ctx context.Context, userID uuid.UUID, amount int) (bool, error) {
	ok := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Balance
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		if b.Amount < amount {
			return nil
		}
		if err := tx.Model(&domain.Balance{}).
			Where("user_id = ?", userID).
			Update("amount", gorm.Expr("amount - ?", amount)).Error; err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}
