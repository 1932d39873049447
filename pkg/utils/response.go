package utils

import (
	stderrors "errors"
	"net/http"

	apperrors "request-tracker/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HttpResponse struct {
	Status     bool        `json:"status"`
	Body       interface{} `json:"body,omitempty"`
	Message    string      `json:"message"`
	Kind       string      `json:"kind,omitempty"`
	TotalCount *uint64     `json:"totalCount,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, totalCount ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(totalCount) > 0 {
		response.TotalCount = &totalCount[0]
	}
	return ctx.JSON(code, response)
}

// ErrorResponse переводит ошибку ядра в HTTP-ответ по таксономии из
// pkg/errors. Никаких ретраев и подмен: kind и код отдаются как есть.
func ErrorResponse(ctx echo.Context, err error, logger ...*zap.Logger) error {
	code := http.StatusInternalServerError
	kind := "internal"
	message := err.Error()

	var invalidInput *apperrors.InvalidInputError
	var httpErr *apperrors.HttpError
	var echoErr *echo.HTTPError

	switch {
	case stderrors.As(err, &invalidInput):
		code = http.StatusBadRequest
		kind = "invalid_input"
		message = invalidInput.Message
	case stderrors.As(err, &httpErr):
		code = httpErr.Code
		kind = httpErr.Kind
		message = httpErr.Message
	case stderrors.As(err, &echoErr):
		code = echoErr.Code
		if m, ok := echoErr.Message.(string); ok {
			message = m
		}
	default:
		for sentinel, mapped := range apperrors.ErrorList {
			if stderrors.Is(err, sentinel) {
				code = mapped.Code
				kind = mapped.Kind
				message = sentinel.Error()
				break
			}
		}
	}

	if len(logger) > 0 && logger[0] != nil && code >= http.StatusInternalServerError {
		logger[0].Error("внутренняя ошибка при обработке запроса", zap.Error(err))
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Message: message,
		Kind:    kind,
	})
}
