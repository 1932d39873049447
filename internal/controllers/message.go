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

type MessageController struct {
	messageService services.MessageServiceInterface
	logger         *zap.Logger
}

func NewMessageController(messageService services.MessageServiceInterface, logger *zap.Logger) *MessageController {
	return &MessageController{messageService: messageService, logger: logger}
}

func (ctrl *MessageController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *MessageController) GetMessages(c echo.Context) error {
	requestID, err := parseIDParam(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	messages, err := ctrl.messageService.GetMessages(c.Request().Context(), requestID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, messages, "Сообщения заявки получены", http.StatusOK)
}

func (ctrl *MessageController) PostMessage(c echo.Context) error {
	requestID, err := parseIDParam(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var payload dto.CreateMessageDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("PostMessage: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("неверный формат сообщения"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	message, err := ctrl.messageService.PostMessage(c.Request().Context(), requestID, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, message, "Сообщение добавлено", http.StatusCreated)
}
