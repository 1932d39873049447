package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"request-tracker/internal/dto"
	"request-tracker/internal/entities"
	"request-tracker/pkg/config"
	apperrors "request-tracker/pkg/errors"
	"request-tracker/pkg/service"
	"request-tracker/pkg/utils"
)

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) GetUsers(ctx context.Context, limit, offset uint64) ([]entities.User, uint64, error) {
	var users []entities.User
	for _, u := range r.store.users {
		users = append(users, *u)
	}
	return users, uint64(len(users)), nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	for _, u := range r.store.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	r.store.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	if _, ok := r.store.users[user.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	r.store.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.store.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.users, id)
	return nil
}

// fakeCache — кэш в памяти без TTL-истечения; достаточно для проверки
// логики блокировки входа.
type fakeCache struct {
	values   map[string]string
	counters map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string), counters: make(map[string]int64)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if s, ok := value.(string); ok {
		c.values[key] = s
	}
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return "", apperrors.ErrNotFound
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.values, key)
		delete(c.counters, key)
	}
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	c.counters[key]++
	return c.counters[key], nil
}

func (c *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return true, nil
}

func newAuthService(store *fakeStore, cache *fakeCache) AuthServiceInterface {
	jwtSvc := service.NewJWTService("test-secret", time.Hour, time.Hour*24)
	cfg := &config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute * 15}
	return NewAuthService(&fakeUserRepo{store: store}, cache, jwtSvc, zap.NewNop(), cfg)
}

func seedLoginUser(t *testing.T, store *fakeStore, username, password string) *entities.User {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &entities.User{
		ID:       uuid.New(),
		Username: username,
		Password: hashed,
		Role:     entities.RoleManager,
		Name:     "Тест",
		Surname:  "Тестов",
		Email:    username + "@example.com",
	}
	store.users[user.ID] = user
	return user
}

func TestRegisterAssignsManagerRole(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store, newFakeCache())

	tokens, err := svc.Register(context.Background(), dto.RegisterDTO{
		Username: "newbie",
		Password: "secret-password",
		Name:     "Новый",
		Surname:  "Пользователь",
		Email:    "newbie@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "MANAGER", tokens.User.Role)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestLoginSuccess(t *testing.T) {
	store := newFakeStore()
	seedLoginUser(t, store, "ivanov", "correct-password")
	svc := newAuthService(store, newFakeCache())

	tokens, err := svc.Login(context.Background(), dto.LoginDTO{Username: "ivanov", Password: "correct-password"})
	require.NoError(t, err)
	assert.Equal(t, "ivanov", tokens.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeStore()
	seedLoginUser(t, store, "ivanov", "correct-password")
	svc := newAuthService(store, newFakeCache())

	_, err := svc.Login(context.Background(), dto.LoginDTO{Username: "ivanov", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownUserIsInvalidCredentials(t *testing.T) {
	svc := newAuthService(newFakeStore(), newFakeCache())

	// Несуществующий логин неотличим от неверного пароля.
	_, err := svc.Login(context.Background(), dto.LoginDTO{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	store := newFakeStore()
	seedLoginUser(t, store, "ivanov", "correct-password")
	svc := newAuthService(store, newFakeCache())

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), dto.LoginDTO{Username: "ivanov", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// После исчерпания попыток даже верный пароль не пускает.
	_, err := svc.Login(context.Background(), dto.LoginDTO{Username: "ivanov", Password: "correct-password"})
	assert.ErrorIs(t, err, apperrors.ErrLoginLocked)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	store := newFakeStore()
	seedLoginUser(t, store, "ivanov", "correct-password")
	svc := newAuthService(store, newFakeCache())

	tokens, err := svc.Login(context.Background(), dto.LoginDTO{Username: "ivanov", Password: "correct-password"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), dto.RefreshDTO{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)

	refreshed, err := svc.Refresh(context.Background(), dto.RefreshDTO{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, "ivanov", refreshed.User.Username)
}
