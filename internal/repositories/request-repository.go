package repositories

import (
	"context"
	"errors"
	"fmt"

	"request-tracker/internal/dto"
	"request-tracker/internal/entities"
	"request-tracker/internal/scope"
	apperrors "request-tracker/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const requestSelectFields = `r.id, r.order_number, r.type, r.sales_organization, r.priority, r.warehouse,
	r.date, r.comment, r.resource, r.od_number, r.status, r.user_id, r.created_at, r.updated_at`

const requestOwnerFields = `u.id, u.username, u.role, u.name, u.surname, u.email, u.rf_ru`

// RequestWithOwner — заявка вместе с владельцем для денормализованной выдачи.
type RequestWithOwner struct {
	Request entities.Request
	Owner   entities.User
}

type RequestRepositoryInterface interface {
	CreateRequest(ctx context.Context, request *entities.Request) (*entities.Request, error)
	// FindVisible находит заявку в видимой области актора; невидимая или
	// отсутствующая заявка — одинаково ErrNotFound.
	FindVisible(ctx context.Context, actor *entities.User, id uuid.UUID) (*RequestWithOwner, error)
	ListVisible(ctx context.Context, actor *entities.User, filter dto.RequestFilter) ([]RequestWithOwner, uint64, error)
	UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request *entities.Request) error
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Request, error)
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entities.RequestStatus) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

func scanRequest(row pgx.Row, request *entities.Request) error {
	var reqType, salesOrg, status string
	err := row.Scan(
		&request.ID, &request.OrderNumber, &reqType, &salesOrg, &request.Priority,
		&request.Warehouse, &request.Date, &request.Comment, &request.Resource,
		&request.ODNumber, &status, &request.UserID, &request.CreatedAt, &request.UpdatedAt,
	)
	if err != nil {
		return err
	}
	request.Type = entities.RequestType(reqType)
	request.SalesOrganization = entities.SalesOrganization(salesOrg)
	parsed, ok := entities.ParseRequestStatus(status)
	if !ok {
		return fmt.Errorf("неизвестный статус %q у заявки %s", status, request.ID)
	}
	request.Status = parsed
	return nil
}

func scanRequestWithOwner(rows pgx.Rows) (*RequestWithOwner, error) {
	var item RequestWithOwner
	var reqType, salesOrg, status, role string
	err := rows.Scan(
		&item.Request.ID, &item.Request.OrderNumber, &reqType, &salesOrg, &item.Request.Priority,
		&item.Request.Warehouse, &item.Request.Date, &item.Request.Comment, &item.Request.Resource,
		&item.Request.ODNumber, &status, &item.Request.UserID, &item.Request.CreatedAt, &item.Request.UpdatedAt,
		&item.Owner.ID, &item.Owner.Username, &role, &item.Owner.Name, &item.Owner.Surname,
		&item.Owner.Email, &item.Owner.RfRu,
	)
	if err != nil {
		return nil, err
	}
	item.Request.Type = entities.RequestType(reqType)
	item.Request.SalesOrganization = entities.SalesOrganization(salesOrg)
	parsedStatus, ok := entities.ParseRequestStatus(status)
	if !ok {
		return nil, fmt.Errorf("неизвестный статус %q у заявки %s", status, item.Request.ID)
	}
	item.Request.Status = parsedStatus
	parsedRole, ok := entities.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("неизвестная роль %q у пользователя %s", role, item.Owner.ID)
	}
	item.Owner.Role = parsedRole
	return &item, nil
}

// CreateRequest вставляет заявку; order_number выдаёт сиквенс БД прямо в
// INSERT — присвоение атомарно и строго возрастает при конкурентных
// вставках.
func (r *RequestRepository) CreateRequest(ctx context.Context, request *entities.Request) (*entities.Request, error) {
	query := `
		INSERT INTO requests
			(id, order_number, type, sales_organization, priority, warehouse, date, comment, resource, od_number, status, user_id, created_at, updated_at)
		VALUES
			($1, nextval('requests_order_number_seq'), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING order_number, created_at, updated_at`

	err := r.storage.QueryRow(ctx, query,
		request.ID, string(request.Type), string(request.SalesOrganization), request.Priority,
		request.Warehouse, request.Date, request.Comment, request.Resource, request.ODNumber,
		request.Status.String(), request.UserID,
	).Scan(&request.OrderNumber, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return nil, wrapStorageErr("создание заявки", err)
	}
	return request, nil
}

func (r *RequestRepository) visibleQuery(actor *entities.User, filter dto.RequestFilter) sq.SelectBuilder {
	return sq.
		Select(requestSelectFields + ", " + requestOwnerFields).
		From("requests r").
		Join("users u ON u.id = r.user_id").
		Where(scope.BuildPredicate(actor, filter)).
		PlaceholderFormat(sq.Dollar)
}

func (r *RequestRepository) FindVisible(ctx context.Context, actor *entities.User, id uuid.UUID) (*RequestWithOwner, error) {
	// Пустой фильтр: для диспетчера это "все статусы".
	query, args, err := r.visibleQuery(actor, dto.RequestFilter{}).
		Where(sq.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса заявки: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStorageErr("поиск заявки", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, wrapStorageErr("поиск заявки", err)
		}
		return nil, apperrors.ErrNotFound
	}
	return scanRequestWithOwner(rows)
}

func (r *RequestRepository) ListVisible(ctx context.Context, actor *entities.User, filter dto.RequestFilter) ([]RequestWithOwner, uint64, error) {
	countQuery, countArgs, err := sq.
		Select("COUNT(*)").
		From("requests r").
		Join("users u ON u.id = r.user_id").
		Where(scope.BuildPredicate(actor, filter)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса подсчёта заявок: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, wrapStorageErr("подсчёт заявок", err)
	}
	if total == 0 {
		return []RequestWithOwner{}, 0, nil
	}

	query, args, err := scope.ApplyListParams(r.visibleQuery(actor, filter), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса списка заявок: %w", err)
	}
	r.logger.Debug("запрос списка заявок", zap.String("query", query))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapStorageErr("получение списка заявок", err)
	}
	defer rows.Close()

	items := make([]RequestWithOwner, 0)
	for rows.Next() {
		item, err := scanRequestWithOwner(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования заявки в списке: %w", err)
		}
		items = append(items, *item)
	}
	return items, total, rows.Err()
}

// UpdateRequestInTx заменяет изменяемые поля; статус и владелец этим
// путём не меняются.
func (r *RequestRepository) UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request *entities.Request) error {
	query := `
		UPDATE requests
		SET type = $2, sales_organization = $3, priority = $4, warehouse = $5,
			date = $6, comment = $7, resource = $8, od_number = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := tx.QueryRow(ctx, query,
		request.ID, string(request.Type), string(request.SalesOrganization), request.Priority,
		request.Warehouse, request.Date, request.Comment, request.Resource, request.ODNumber,
	).Scan(&request.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return wrapStorageErr("обновление заявки", err)
	}
	return nil
}

// FindForUpdateInTx блокирует строку заявки (FOR UPDATE): конкурентные
// complete/postMessage по одной заявке сериализуются здесь.
func (r *RequestRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Request, error) {
	query := fmt.Sprintf("SELECT %s FROM requests r WHERE r.id = $1 FOR UPDATE", requestSelectFields)

	var request entities.Request
	if err := scanRequest(tx.QueryRow(ctx, query, id), &request); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr("блокировка заявки", err)
	}
	return &request, nil
}

func (r *RequestRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entities.RequestStatus) error {
	tag, err := tx.Exec(ctx, "UPDATE requests SET status = $2, updated_at = NOW() WHERE id = $1", id, status.String())
	if err != nil {
		return wrapStorageErr("смена статуса заявки", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, "DELETE FROM requests WHERE id = $1", id)
	if err != nil {
		return wrapStorageErr("удаление заявки", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
