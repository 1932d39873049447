// Package scope — движок видимости заявок. Чистый построитель
// предикатов поверх squirrel: по актору и критериям фильтра собирает
// неизменяемые фрагменты WHERE, которые репозиторий рендерит в SQL.
// Состояния у движка нет, всё тестируется без БД через ToSql().
package scope

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"request-tracker/internal/dto"
	"request-tracker/internal/entities"
)

// Колонки таблиц в предикатах: заявки — r, владелец — u (JOIN users u ON u.id = r.user_id).
const (
	colUserID      = "r.user_id"
	colStatus      = "r.status"
	colOrderNumber = "r.order_number"
	colType        = "r.type"
	colSalesOrg    = "r.sales_organization"
	colPriority    = "r.priority"
	colWarehouse   = "r.warehouse"
	colDate        = "r.date"
	colCreatedAt   = "r.created_at"
	colOwnerRfRu   = "u.rf_ru"
)

// allowedSortFields — белый список сортировок: имя из API -> колонка.
var allowedSortFields = map[string]string{
	"createdAt":   colCreatedAt,
	"created_at":  colCreatedAt,
	"date":        colDate,
	"orderNumber": colOrderNumber,
	"status":      colStatus,
	"type":        colType,
	"warehouse":   colWarehouse,
	"priority":    colPriority,
}

// BuildPredicate собирает полный предикат видимости: ролевое ограничение
// пересекается с каждым заданным критерием фильтра.
func BuildPredicate(actor *entities.User, filter dto.RequestFilter) sq.Sqlizer {
	conj := sq.And{}

	if role := RolePredicate(actor, filter.Statuses); role != nil {
		conj = append(conj, role)
	}
	conj = append(conj, criteriaPredicates(actor, filter)...)

	if len(conj) == 0 {
		// Админ без фильтров: предикат "всё видно".
		return sq.Expr("TRUE")
	}
	return conj
}

// RolePredicate — только ролевая часть предиката (шаг 2 алгоритма).
// Для админа ограничений нет (nil).
func RolePredicate(actor *entities.User, requestedStatuses []entities.RequestStatus) sq.Sqlizer {
	switch actor.Role {
	case entities.RoleManager:
		return sq.Eq{colUserID: actor.ID}
	case entities.RoleDispatcher:
		statuses := statusStrings(requestedStatuses)
		// Диспетчер видит всё, что проходит статусный фильтр, плюс
		// заявки, в которых он отмечался сообщением (в рамках того же
		// статусного набора). Пустой набор означает "все статусы",
		// а не "ничего".
		return sq.Or{
			sq.Expr(
				`r.id IN (SELECT m.request_id FROM messages m JOIN requests pr ON pr.id = m.request_id WHERE m.user_id = ? AND pr.status = ANY(?))`,
				actor.ID, statuses,
			),
			sq.Eq{colStatus: statuses},
		}
	case entities.RoleAdmin:
		return nil
	}
	// Неизвестная роль разрешений не получает.
	return sq.Expr("FALSE")
}

func criteriaPredicates(actor *entities.User, filter dto.RequestFilter) []sq.Sqlizer {
	var preds []sq.Sqlizer

	if filter.OrderNumber != nil {
		preds = append(preds, sq.Eq{colOrderNumber: *filter.OrderNumber})
	}
	if filter.Type != nil {
		preds = append(preds, sq.Eq{colType: string(*filter.Type)})
	}
	if filter.SalesOrganization != nil {
		preds = append(preds, sq.Eq{colSalesOrg: string(*filter.SalesOrganization)})
	}
	if filter.Priority != nil {
		preds = append(preds, sq.Eq{colPriority: string(*filter.Priority)})
	}
	if filter.Warehouse != "" {
		preds = append(preds, sq.ILike{colWarehouse: "%" + filter.Warehouse + "%"})
	}
	if filter.RfRu != "" {
		preds = append(preds, sq.ILike{colOwnerRfRu: "%" + filter.RfRu + "%"})
	}
	if filter.DateFrom != nil {
		preds = append(preds, sq.GtOrEq{colDate: StartOfDay(*filter.DateFrom)})
	}
	if filter.DateTo != nil {
		preds = append(preds, sq.LtOrEq{colDate: EndOfDay(*filter.DateTo)})
	}
	if filter.CreatedAtFrom != nil {
		preds = append(preds, sq.GtOrEq{colCreatedAt: StartOfDay(*filter.CreatedAtFrom)})
	}
	if filter.CreatedAtTo != nil {
		preds = append(preds, sq.LtOrEq{colCreatedAt: EndOfDay(*filter.CreatedAtTo)})
	}

	// Статусный набор для диспетчера уже учтён в ролевой части
	// (OR-объединение); для остальных ролей это обычный критерий.
	if len(filter.Statuses) > 0 && actor.Role != entities.RoleDispatcher {
		preds = append(preds, sq.Eq{colStatus: statusStrings(filter.Statuses)})
	}

	return preds
}

// ApplyListParams навешивает сортировку и пагинацию на SELECT.
// Поле сортировки — только из белого списка, по умолчанию created_at DESC.
func ApplyListParams(builder sq.SelectBuilder, filter dto.RequestFilter) sq.SelectBuilder {
	column, ok := allowedSortFields[filter.SortBy]
	if !ok {
		column = colCreatedAt
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}
	builder = builder.OrderBy(fmt.Sprintf("%s %s", column, direction))

	limit := filter.Limit
	if limit == 0 {
		limit = 10
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	return builder.Limit(limit).Offset((page - 1) * limit)
}

// StartOfDay / EndOfDay — включительные границы диапазона дат.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

func statusStrings(statuses []entities.RequestStatus) []string {
	if len(statuses) == 0 {
		statuses = entities.AllStatuses
	}
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
