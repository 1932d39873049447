package services

import (
	"context"

	"request-tracker/internal/authz"
	"request-tracker/internal/dto"
	"request-tracker/internal/entities"
	"request-tracker/internal/repositories"
	apperrors "request-tracker/pkg/errors"
	"request-tracker/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MessageServiceInterface interface {
	GetMessages(ctx context.Context, requestID uuid.UUID) ([]dto.MessageDTO, error)
	PostMessage(ctx context.Context, requestID uuid.UUID, data dto.CreateMessageDTO) (*dto.MessageDTO, error)
}

type MessageService struct {
	txManager   repositories.TxManagerInterface
	requestRepo repositories.RequestRepositoryInterface
	messageRepo repositories.MessageRepositoryInterface
	gate        *authz.Gate
	logger      *zap.Logger
}

func NewMessageService(
	txManager repositories.TxManagerInterface,
	requestRepo repositories.RequestRepositoryInterface,
	messageRepo repositories.MessageRepositoryInterface,
	gate *authz.Gate,
	logger *zap.Logger,
) MessageServiceInterface {
	return &MessageService{
		txManager:   txManager,
		requestRepo: requestRepo,
		messageRepo: messageRepo,
		gate:        gate,
		logger:      logger,
	}
}

func (s *MessageService) GetMessages(ctx context.Context, requestID uuid.UUID) ([]dto.MessageDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	// Читать тред можно только у видимой заявки; невидимая — NotFound.
	if _, err := s.requestRepo.FindVisible(ctx, actor, requestID); err != nil {
		return nil, err
	}
	if err := s.gate.Can(actor, authz.ReadMessages, nil); err != nil {
		return nil, err
	}

	items, err := s.messageRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.MessageDTO, 0, len(items))
	for i := range items {
		result = append(result, dto.MessageToDTO(&items[i].Message, &items[i].Author))
	}
	return result, nil
}

// PostMessage добавляет сообщение в тред. Флаг needCorrection от
// диспетчера или админа переводит заявку CREATED -> INCORRECT (повторный
// флаг на INCORRECT — no-op, на COMPLETED — InvalidTransition). Тот же
// флаг от менеджера молча игнорируется: сообщение сохраняется, статус
// не трогается.
func (s *MessageService) PostMessage(ctx context.Context, requestID uuid.UUID, data dto.CreateMessageDTO) (*dto.MessageDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.requestRepo.FindVisible(ctx, actor, requestID); err != nil {
		return nil, err
	}
	if err := s.gate.Can(actor, authz.PostMessage, nil); err != nil {
		return nil, err
	}

	message := &entities.Message{
		ID:        uuid.New(),
		RequestID: requestID,
		UserID:    actor.ID,
		Message:   data.Message,
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		// Блокируем заявку: параллельный complete не должен проскочить
		// между проверкой статуса и его сменой.
		request, err := s.requestRepo.FindForUpdateInTx(ctx, tx, requestID)
		if err != nil {
			return err
		}

		if data.NeedCorrection && s.gate.CanTriggerCorrection(actor) {
			switch request.Status {
			case entities.StatusCompleted:
				// Запрос коррекции по выполненной заявке отклоняется,
				// а не проглатывается.
				return apperrors.ErrInvalidTransition
			case entities.StatusCreated:
				if err := s.requestRepo.UpdateStatusInTx(ctx, tx, requestID, entities.StatusIncorrect); err != nil {
					return err
				}
				s.logger.Info("заявка помечена некорректной",
					zap.String("requestId", requestID.String()),
					zap.String("userId", actor.ID.String()),
				)
			case entities.StatusIncorrect:
				// Уже некорректна — идемпотентно.
			}
		}

		return s.messageRepo.CreateMessageInTx(ctx, tx, message)
	})
	if err != nil {
		return nil, err
	}

	result := dto.MessageToDTO(message, actor)
	return &result, nil
}
