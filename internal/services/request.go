package services

import (
	"context"
	"strings"

	"request-tracker/internal/authz"
	"request-tracker/internal/dto"
	"request-tracker/internal/entities"
	"request-tracker/internal/repositories"
	apperrors "request-tracker/pkg/errors"
	"request-tracker/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RequestServiceInterface interface {
	CreateRequest(ctx context.Context, data dto.CreateRequestDTO) (*dto.RequestDTO, error)
	FindRequest(ctx context.Context, id uuid.UUID) (*dto.RequestDTO, error)
	GetRequests(ctx context.Context, filter dto.RequestFilter) ([]dto.RequestDTO, uint64, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, data dto.UpdateRequestDTO) (*dto.RequestDTO, error)
	CompleteRequest(ctx context.Context, id uuid.UUID) (*dto.RequestDTO, error)
	DeleteRequest(ctx context.Context, id uuid.UUID) error
}

type RequestService struct {
	txManager   repositories.TxManagerInterface
	requestRepo repositories.RequestRepositoryInterface
	messageRepo repositories.MessageRepositoryInterface
	gate        *authz.Gate
	logger      *zap.Logger
}

func NewRequestService(
	txManager repositories.TxManagerInterface,
	requestRepo repositories.RequestRepositoryInterface,
	messageRepo repositories.MessageRepositoryInterface,
	gate *authz.Gate,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		txManager:   txManager,
		requestRepo: requestRepo,
		messageRepo: messageRepo,
		gate:        gate,
		logger:      logger,
	}
}

func (s *RequestService) CreateRequest(ctx context.Context, data dto.CreateRequestDTO) (*dto.RequestDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Can(actor, authz.CreateRequest, nil); err != nil {
		return nil, err
	}

	request := &entities.Request{
		ID:                uuid.New(),
		Type:              entities.RequestType(data.Type),
		SalesOrganization: entities.SalesOrganization(data.SalesOrganization),
		Priority:          null.NewString(data.Priority, data.Priority != ""),
		Warehouse:         data.Warehouse,
		Date:              data.Date,
		Comment:           data.Comment,
		ODNumber:          joinODNumber(data.ODNumber),
		Status:            entities.StatusCreated,
		UserID:            actor.ID,
	}
	// Ресурс имеет смысл только для доставки день в день.
	if request.Type == entities.TypeOneDayDelivery && data.Resource != "" {
		request.Resource = null.StringFrom(data.Resource)
	}

	created, err := s.requestRepo.CreateRequest(ctx, request)
	if err != nil {
		s.logger.Error("не удалось создать заявку", zap.Error(err))
		return nil, err
	}

	s.logger.Info("заявка создана",
		zap.String("id", created.ID.String()),
		zap.Uint64("orderNumber", created.OrderNumber),
		zap.String("userId", actor.ID.String()),
	)

	result := dto.RequestToDTO(created, actor)
	return &result, nil
}

func (s *RequestService) FindRequest(ctx context.Context, id uuid.UUID) (*dto.RequestDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	// Невидимая заявка неотличима от отсутствующей.
	item, err := s.requestRepo.FindVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	result := dto.RequestToDTO(&item.Request, &item.Owner)
	return &result, nil
}

func (s *RequestService) GetRequests(ctx context.Context, filter dto.RequestFilter) ([]dto.RequestDTO, uint64, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.requestRepo.ListVisible(ctx, actor, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.RequestDTO, 0, len(items))
	for i := range items {
		result = append(result, dto.RequestToDTO(&items[i].Request, &items[i].Owner))
	}
	return result, total, nil
}

func (s *RequestService) UpdateRequest(ctx context.Context, id uuid.UUID, data dto.UpdateRequestDTO) (*dto.RequestDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	var updated *entities.Request
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		request, err := s.requestRepo.FindForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.gate.Can(actor, authz.UpdateRequest, request); err != nil {
			return err
		}

		applyUpdate(request, data)
		if err := s.requestRepo.UpdateRequestInTx(ctx, tx, request); err != nil {
			return err
		}
		updated = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	item, err := s.requestRepo.FindVisible(ctx, actor, updated.ID)
	if err != nil {
		return nil, err
	}
	result := dto.RequestToDTO(&item.Request, &item.Owner)
	return &result, nil
}

func (s *RequestService) CompleteRequest(ctx context.Context, id uuid.UUID) (*dto.RequestDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		request, err := s.requestRepo.FindForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.gate.Can(actor, authz.CompleteRequest, request); err != nil {
			return err
		}

		// Выполненная заявка выполненной и остаётся.
		if !request.Status.CanTransitionTo(entities.StatusCompleted) {
			return apperrors.ErrInvalidTransition
		}
		return s.requestRepo.UpdateStatusInTx(ctx, tx, id, entities.StatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("заявка выполнена", zap.String("id", id.String()), zap.String("userId", actor.ID.String()))

	item, err := s.requestRepo.FindVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	result := dto.RequestToDTO(&item.Request, &item.Owner)
	return &result, nil
}

// DeleteRequest удаляет заявку вместе со всем тредом сообщений в одной
// транзакции — осиротевших сообщений не остаётся.
func (s *RequestService) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		request, err := s.requestRepo.FindForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.gate.Can(actor, authz.DeleteRequest, request); err != nil {
			return err
		}

		if err := s.messageRepo.DeleteByRequestInTx(ctx, tx, id); err != nil {
			return err
		}
		return s.requestRepo.DeleteInTx(ctx, tx, id)
	})
}

// applyUpdate — частичное обновление: нулевые поля остаются прежними.
// Приоритет передаётся указателем и сбрасывается пустой строкой.
func applyUpdate(request *entities.Request, data dto.UpdateRequestDTO) {
	if data.Type != "" {
		request.Type = entities.RequestType(data.Type)
	}
	if data.SalesOrganization != "" {
		request.SalesOrganization = entities.SalesOrganization(data.SalesOrganization)
	}
	if data.Priority != nil {
		request.Priority = null.NewString(*data.Priority, *data.Priority != "")
	}
	if data.Warehouse != "" {
		request.Warehouse = data.Warehouse
	}
	if !data.Date.IsZero() {
		request.Date = data.Date
	}
	if data.Comment != "" {
		request.Comment = data.Comment
	}
	if data.ODNumber != nil {
		request.ODNumber = joinODNumber(data.ODNumber)
	}

	if request.Type == entities.TypeOneDayDelivery {
		if data.Resource != "" {
			request.Resource = null.StringFrom(data.Resource)
		}
	} else {
		request.Resource = null.String{}
	}
}

func joinODNumber(entries []string) null.String {
	if len(entries) == 0 {
		return null.String{}
	}
	return null.StringFrom(strings.Join(entries, entities.ODNumberSeparator))
}
