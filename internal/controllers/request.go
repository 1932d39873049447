package controllers

import (
	"net/http"

	"request-tracker/internal/dto"
	"request-tracker/internal/services"
	apperrors "request-tracker/pkg/errors"
	"request-tracker/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RequestController struct {
	requestService services.RequestServiceInterface
	logger         *zap.Logger
}

func NewRequestController(requestService services.RequestServiceInterface, logger *zap.Logger) *RequestController {
	return &RequestController{requestService: requestService, logger: logger}
}

func (ctrl *RequestController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewInvalidInputError("некорректный идентификатор: %s", c.Param("id"))
	}
	return id, nil
}

func (ctrl *RequestController) CreateRequest(c echo.Context) error {
	var payload dto.CreateRequestDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("CreateRequest: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("неверный формат данных заявки"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	request, err := ctrl.requestService.CreateRequest(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, request, "Заявка успешно создана", http.StatusCreated)
}

func (ctrl *RequestController) GetRequests(c echo.Context) error {
	filter := dto.ParseRequestFilter(c.Request().URL.Query())

	requests, total, err := ctrl.requestService.GetRequests(c.Request().Context(), filter)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, requests, "Список заявок получен", http.StatusOK, total)
}

func (ctrl *RequestController) FindRequest(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	request, err := ctrl.requestService.FindRequest(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, request, "Заявка найдена", http.StatusOK)
}

func (ctrl *RequestController) UpdateRequest(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var payload dto.UpdateRequestDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("UpdateRequest: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("неверный формат данных заявки"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	request, err := ctrl.requestService.UpdateRequest(c.Request().Context(), id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, request, "Заявка обновлена", http.StatusOK)
}

func (ctrl *RequestController) CompleteRequest(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	request, err := ctrl.requestService.CompleteRequest(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, request, "Заявка выполнена", http.StatusOK)
}

func (ctrl *RequestController) DeleteRequest(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.requestService.DeleteRequest(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, nil, "Заявка удалена", http.StatusOK)
}
