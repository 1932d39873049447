package services

import (
	"context"

	"request-tracker/internal/authz"
	"request-tracker/internal/dto"
	"request-tracker/internal/repositories"
	"request-tracker/pkg/utils"

	"go.uber.org/zap"
)

// exportPageSize — сколько строк выгружается в один XLSX-файл. Экспорт
// идёт через тот же движок видимости, что и список: в файл попадает
// ровно то, что актор видит на экране.
const exportPageSize = 100000

type ReportServiceInterface interface {
	GetReportRows(ctx context.Context, filter dto.RequestFilter) ([]repositories.RequestWithOwner, uint64, error)
}

type ReportService struct {
	requestRepo repositories.RequestRepositoryInterface
	gate        *authz.Gate
	logger      *zap.Logger
}

func NewReportService(
	requestRepo repositories.RequestRepositoryInterface,
	gate *authz.Gate,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{requestRepo: requestRepo, gate: gate, logger: logger}
}

func (s *ReportService) GetReportRows(ctx context.Context, filter dto.RequestFilter) ([]repositories.RequestWithOwner, uint64, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := s.gate.Can(actor, authz.ReadRequest, nil); err != nil {
		return nil, 0, err
	}

	filter.Page = 1
	filter.Limit = exportPageSize

	rows, total, err := s.requestRepo.ListVisible(ctx, actor, filter)
	if err != nil {
		return nil, 0, err
	}

	s.logger.Debug("сформирована выгрузка заявок",
		zap.String("userId", actor.ID.String()),
		zap.Uint64("total", total),
	)
	return rows, total, nil
}
