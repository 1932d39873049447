package middleware

import (
	"context"
	"strings"

	"request-tracker/internal/entities"
	"request-tracker/pkg/contextkeys"
	apperrors "request-tracker/pkg/errors"
	"request-tracker/pkg/service"
	"request-tracker/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ActorProvider загружает пользователя по id из claims. Узкий интерфейс,
// чтобы middleware не тянул весь репозиторий.
type ActorProvider interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	users      ActorProvider
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, users ActorProvider, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		users:      users,
		logger:     logger,
	}
}

// Auth проверяет Bearer-токен и кладёт аутентифицированного актора
// в контекст запроса под ActorKey. Все ошибки здесь — Unauthenticated.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess)
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: некорректный userId в токене", zap.String("userId", claims.UserID))
			return utils.ErrorResponse(c, apperrors.ErrInvalidToken)
		}

		actor, err := m.users.FindByID(c.Request().Context(), userID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: пользователь из токена не найден", zap.String("userId", claims.UserID))
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized)
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.ActorKey, actor)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
