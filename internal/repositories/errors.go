package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "request-tracker/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// wrapStorageErr переводит инфраструктурные сбои хранилища в Unavailable,
// нарушение уникальности — в Conflict. Бизнес-ошибки (ErrNotFound)
// проходят насквозь.
func wrapStorageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.NewHttpError(http.StatusConflict, "conflict",
			apperrors.ErrConflict.Error(), fmt.Errorf("%s: %w", op, err))
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.NewHttpError(http.StatusServiceUnavailable, "unavailable",
			apperrors.ErrUnavailable.Error(), fmt.Errorf("%s: %w", op, err))
	}

	return fmt.Errorf("%s: %w", op, err)
}
