package controllers

import (
	"net/http"

	"request-tracker/internal/dto"
	"request-tracker/internal/services"
	apperrors "request-tracker/pkg/errors"
	"request-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (ctrl *UserController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *UserController) GetProfile(c echo.Context) error {
	profile, err := ctrl.userService.GetProfile(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, profile, "Профиль получен", http.StatusOK)
}

func (ctrl *UserController) UpdateProfile(c echo.Context) error {
	var payload dto.UpdateProfileDTO

	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("неверный формат данных профиля"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	profile, err := ctrl.userService.UpdateProfile(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, profile, "Профиль обновлён", http.StatusOK)
}

func (ctrl *UserController) GetUsers(c echo.Context) error {
	limit, offset, _ := utils.ParsePaginationParams(c.Request().URL.Query())

	users, total, err := ctrl.userService.GetUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, users, "Список пользователей получен", http.StatusOK, total)
}

func (ctrl *UserController) UpdateUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var payload dto.AdminUpdateUserDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("неверный формат данных пользователя"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.userService.AdminUpdateUser(c.Request().Context(), id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, user, "Пользователь обновлён", http.StatusOK)
}

func (ctrl *UserController) DeleteUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Пользователь удалён", http.StatusOK)
}
