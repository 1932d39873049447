package dto

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"request-tracker/internal/entities"
	"request-tracker/pkg/utils"
)

// RequestFilter — явный объект параметров списка заявок. Передаётся
// параметром в сервис и движок видимости; никакого сквозного состояния
// фильтров в процессе нет.
type RequestFilter struct {
	OrderNumber       *uint64
	DateFrom          *time.Time
	DateTo            *time.Time
	CreatedAtFrom     *time.Time
	CreatedAtTo       *time.Time
	Type              *entities.RequestType
	SalesOrganization *entities.SalesOrganization
	Priority          *entities.RequestPriority
	Warehouse         string
	RfRu              string
	Statuses          []entities.RequestStatus

	SortBy    string
	SortOrder string
	Page      uint64
	Limit     uint64
}

const filterDateLayout = "2006-01-02"

// ParseRequestFilter разбирает query-параметры списка заявок.
// Неизвестные значения перечислений и нечитаемые даты отбрасываются,
// а не превращаются в ошибку: фильтр — это сужение, не контракт.
func ParseRequestFilter(values url.Values) RequestFilter {
	filter := RequestFilter{
		SortBy:    "created_at",
		SortOrder: "desc",
	}
	filter.Limit, _, filter.Page = utils.ParsePaginationParams(values)

	if s := values.Get("orderNumber"); s != "" {
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			filter.OrderNumber = &n
		}
	}

	filter.DateFrom = parseDate(values.Get("dateFrom"))
	filter.DateTo = parseDate(values.Get("dateTo"))
	filter.CreatedAtFrom = parseDate(values.Get("createdAtFrom"))
	filter.CreatedAtTo = parseDate(values.Get("createdAtTo"))

	if s := values.Get("type"); s != "" {
		if t := entities.RequestType(s); t.Valid() {
			filter.Type = &t
		}
	}
	if s := values.Get("salesOrganization"); s != "" {
		if so := entities.SalesOrganization(s); so.Valid() {
			filter.SalesOrganization = &so
		}
	}
	if s := values.Get("priority"); s != "" {
		if p := entities.RequestPriority(s); p.Valid() {
			filter.Priority = &p
		}
	}

	filter.Warehouse = strings.TrimSpace(values.Get("warehouse"))
	filter.RfRu = strings.TrimSpace(values.Get("rfRu"))

	for _, raw := range values["status"] {
		for _, piece := range strings.Split(raw, ",") {
			if st, ok := entities.ParseRequestStatus(strings.TrimSpace(piece)); ok {
				filter.Statuses = append(filter.Statuses, st)
			}
		}
	}

	if sort := values.Get("sortBy"); sort != "" {
		filter.SortBy = sort
	}
	if order := strings.ToLower(values.Get("sortOrder")); order == "asc" || order == "desc" {
		filter.SortOrder = order
	}

	return filter
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(filterDateLayout, s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}
