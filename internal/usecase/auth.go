package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"courseplatform/internal/domain"
	"courseplatform/internal/infrastructure/security"
)

type AuthUseCase struct {
	users           UserStore
	hasher          *security.PasswordHasher
	tokenManager    *security.TokenManager
	tokenCache      TokenCache
	startingBalance int
	log             *zap.Logger
}

func NewAuthUseCase(
	users UserStore,
	hasher *security.PasswordHasher,
	tm *security.TokenManager,
	tc TokenCache,
	startingBalance int,
	log *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:           users,
		hasher:          hasher,
		tokenManager:    tm,
		tokenCache:      tc,
		startingBalance: startingBalance,
		log:             log,
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, username, email, password string) (string, error) {
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: hash,
	}

	// Пользователь без баланса существовать не должен, поэтому
	// баланс создается той же транзакцией, а не отложенным хуком.
	if err := uc.users.CreateWithBalance(ctx, user, uc.startingBalance); err != nil {
		return "", err
	}

	uc.log.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.Int("starting_balance", uc.startingBalance))

	return user.ID.String(), nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return "", "", errors.New("invalid credentials")
	}
	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return "", "", errors.New("invalid credentials")
	}

	return uc.generateAndSaveTokens(ctx, user.ID.String())
}

func (uc *AuthUseCase) Refresh(ctx context.Context, oldRefreshToken string) (string, string, error) {
	userID, err := uc.tokenManager.ValidateRefreshToken(oldRefreshToken)
	if err != nil {
		return "", "", err
	}

	cachedID, err := uc.tokenCache.CheckRefresh(ctx, oldRefreshToken)
	if err != nil || cachedID != userID {
		return "", "", errors.New("token revoked")
	}
	// Удаляем старый
	_ = uc.tokenCache.DeleteRefresh(ctx, oldRefreshToken)

	return uc.generateAndSaveTokens(ctx, userID)
}

func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	return uc.tokenCache.DeleteRefresh(ctx, refreshToken)
}

func (uc *AuthUseCase) ValidateAccess(token string) (string, error) {
	return uc.tokenManager.ValidateAccessToken(token)
}

func (uc *AuthUseCase) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx)
}

func (uc *AuthUseCase) generateAndSaveTokens(ctx context.Context, userID string) (string, string, error) {
	access, refresh, err := uc.tokenManager.Generate(userID)
	if err != nil {
		return "", "", err
	}
	if err := uc.tokenCache.SaveRefresh(ctx, userID, refresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
