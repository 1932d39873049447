package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenNotYetValid     = fmt.Errorf("токен ещё не активен")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")

	// Авторизация и аутентификация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrLoginLocked        = fmt.Errorf("учётная запись временно заблокирована")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")

	// Бизнес-ошибки
	ErrNotFound          = fmt.Errorf("запись не найдена")
	ErrInvalidTransition = fmt.Errorf("недопустимый переход статуса")
	ErrConflict          = fmt.Errorf("конфликт конкурентного обновления")
	ErrUnavailable       = fmt.Errorf("хранилище недоступно")
)

// InvalidInputError — ошибка валидации входных данных (400).
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError привязывает ошибку к HTTP-коду и машиночитаемому kind.
// Внешний слой переводит её в ответ как есть, без угадывания.
type HttpError struct {
	Code    int
	Kind    string
	Message string
	Err     error
}

func (e *HttpError) Error() string { return e.Message }

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, kind, message string, err error) *HttpError {
	return &HttpError{Code: code, Kind: kind, Message: message, Err: err}
}

// ErrorList — соответствие сентинелов HTTP-кодам и kind'ам
// (таксономия: unauthenticated / forbidden / not_found / invalid_input /
// invalid_transition / conflict / unavailable).
var ErrorList = map[error]*HttpError{
	ErrUnauthorized:       {Code: http.StatusUnauthorized, Kind: "unauthenticated"},
	ErrEmptyAuthHeader:    {Code: http.StatusUnauthorized, Kind: "unauthenticated"},
	ErrInvalidAuthHeader:  {Code: http.StatusUnauthorized, Kind: "unauthenticated"},
	ErrInvalidToken:       {Code: http.StatusUnauthorized, Kind: "unauthenticated"},
	ErrTokenExpired:       {Code: http.StatusUnauthorized, Kind: "unauthenticated"},
	ErrTokenNotYetValid:   {Code: http.StatusUnauthorized, Kind: "unauthenticated"},
	ErrTokenIsNotRefresh:  {Code: http.StatusUnauthorized, Kind: "unauthenticated"},
	ErrTokenIsNotAccess:   {Code: http.StatusUnauthorized, Kind: "unauthenticated"},
	ErrInvalidCredentials: {Code: http.StatusUnauthorized, Kind: "unauthenticated"},
	ErrLoginLocked:        {Code: http.StatusTooManyRequests, Kind: "locked"},
	ErrForbidden:          {Code: http.StatusForbidden, Kind: "forbidden"},
	ErrNotFound:           {Code: http.StatusNotFound, Kind: "not_found"},
	ErrInvalidTransition:  {Code: http.StatusConflict, Kind: "invalid_transition"},
	ErrConflict:           {Code: http.StatusConflict, Kind: "conflict"},
	ErrUnavailable:        {Code: http.StatusServiceUnavailable, Kind: "unavailable"},
}
