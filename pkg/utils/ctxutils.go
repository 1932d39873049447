package utils

import (
	"context"

	"request-tracker/internal/entities"
	"request-tracker/pkg/contextkeys"
	apperrors "request-tracker/pkg/errors"
)

// GetActorFromCtx достаёт аутентифицированного пользователя, положенного
// auth-middleware. Отсутствие актора — это Unauthenticated, не паника.
func GetActorFromCtx(ctx context.Context) (*entities.User, error) {
	actor, ok := ctx.Value(contextkeys.ActorKey).(*entities.User)
	if !ok || actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return actor, nil
}
