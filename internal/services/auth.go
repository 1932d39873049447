package services

import (
	"context"
	"errors"
	"fmt"

	"request-tracker/internal/dto"
	"request-tracker/internal/entities"
	"request-tracker/internal/repositories"
	"request-tracker/pkg/config"
	apperrors "request-tracker/pkg/errors"
	"request-tracker/pkg/service"
	"request-tracker/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokensDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokensDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokensDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
	cfg        *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		logger:     logger,
		cfg:        cfg,
	}
}

// Register создаёт пользователя с ролью MANAGER. Роль повышает только
// администратор через управление пользователями.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokensDTO, error) {
	hashedPassword, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Username: payload.Username,
		Password: hashedPassword,
		Role:     entities.RoleManager,
		Name:     payload.Name,
		Surname:  payload.Surname,
		Email:    payload.Email,
		RfRu:     null.NewString(payload.RfRu, payload.RfRu != ""),
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("зарегистрирован новый пользователь",
		zap.String("userId", created.ID.String()),
		zap.String("username", created.Username),
	)
	return s.issueTokens(created)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokensDTO, error) {
	user, err := s.userRepo.FindByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.checkLockout(ctx, user.ID); err != nil {
		return nil, err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	s.resetLoginAttempts(ctx, user.ID)
	return s.issueTokens(user)
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokensDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *entities.User) (*dto.TokensDTO, error) {
	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}
	return &dto.TokensDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.UserToDTO(user),
	}, nil
}

func (s *AuthService) checkLockout(ctx context.Context, userID uuid.UUID) error {
	lockoutKey := fmt.Sprintf("lockout:%s", userID)

	// Пока ключ жив — вход закрыт.
	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		return apperrors.ErrLoginLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID uuid.UUID) {
	attemptsKey := fmt.Sprintf("login_attempts:%s", userID)
	attempts, _ := s.cacheRepo.Incr(ctx, attemptsKey)
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf("lockout:%s", userID)
		s.cacheRepo.Set(ctx, lockoutKey, "locked", s.cfg.LockoutDuration)
		s.cacheRepo.Del(ctx, attemptsKey)
		s.logger.Warn("учётная запись заблокирована после серии неудачных входов",
			zap.String("userId", userID.String()),
		)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID uuid.UUID) {
	attemptsKey := fmt.Sprintf("login_attempts:%s", userID)
	lockoutKey := fmt.Sprintf("lockout:%s", userID)
	s.cacheRepo.Del(ctx, attemptsKey, lockoutKey)
}
