package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courseplatform/internal/domain"
	"courseplatform/internal/infrastructure/inmem"
	"courseplatform/internal/infrastructure/security"
	"courseplatform/internal/usecase"
)

type fakeTokenCache struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{tokens: make(map[string]string)}
}

func (c *fakeTokenCache) SaveRefresh(_ context.Context, userID, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[token] = userID
	return nil
}

func (c *fakeTokenCache) CheckRefresh(_ context.Context, token string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	userID, ok := c.tokens[token]
	if !ok {
		return "", errors.New("not found")
	}
	return userID, nil
}

func (c *fakeTokenCache) DeleteRefresh(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tokens, token)
	return nil
}

func newAuthUseCase(store *inmem.Store) *usecase.AuthUseCase {
	return usecase.NewAuthUseCase(
		store,
		security.NewPasswordHasher(),
		security.NewTokenManager("access-secret", "refresh-secret"),
		newFakeTokenCache(),
		1000,
		zap.NewNop(),
	)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	uc := newAuthUseCase(store)

	userID, err := uc.Register(ctx, "student", "student@test.io", "password")
	require.NoError(t, err)

	id, err := uuid.Parse(userID)
	require.NoError(t, err)

	// Баланс должен появиться вместе с пользователем
	b, err := store.GetByUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1000, b.Amount)

	_, err = uc.Register(ctx, "other", "student@test.io", "password")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLoginAndValidate(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	uc := newAuthUseCase(store)

	userID, err := uc.Register(ctx, "student", "student@test.io", "password")
	require.NoError(t, err)

	_, _, err = uc.Login(ctx, "student@test.io", "wrong")
	assert.Error(t, err)

	_, _, err = uc.Login(ctx, "nobody@test.io", "password")
	assert.Error(t, err)

	access, refresh, err := uc.Login(ctx, "student@test.io", "password")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	got, err := uc.ValidateAccess(access)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	uc := newAuthUseCase(store)

	_, err := uc.Register(ctx, "student", "student@test.io", "password")
	require.NoError(t, err)

	_, refresh, err := uc.Login(ctx, "student@test.io", "password")
	require.NoError(t, err)

	access2, refresh2, err := uc.Refresh(ctx, refresh)
	require.NoError(t, err)
	require.NotEmpty(t, access2)

	// Старый refresh отозван после ротации
	_, _, err = uc.Refresh(ctx, refresh)
	assert.Error(t, err)

	// Новый работает
	_, _, err = uc.Refresh(ctx, refresh2)
	assert.NoError(t, err)
}

func TestLogoutRevokesRefresh(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	uc := newAuthUseCase(store)

	_, err := uc.Register(ctx, "student", "student@test.io", "password")
	require.NoError(t, err)

	_, refresh, err := uc.Login(ctx, "student@test.io", "password")
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, refresh))

	_, _, err = uc.Refresh(ctx, refresh)
	assert.Error(t, err)
}
