package dto

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"request-tracker/internal/entities"
)

func TestParseRequestFilterDefaults(t *testing.T) {
	filter := ParseRequestFilter(url.Values{})

	assert.Equal(t, "created_at", filter.SortBy)
	assert.Equal(t, "desc", filter.SortOrder)
	assert.Equal(t, uint64(1), filter.Page)
	assert.Equal(t, uint64(10), filter.Limit)
	assert.Nil(t, filter.OrderNumber)
	assert.Empty(t, filter.Statuses)
}

func TestParseRequestFilterValues(t *testing.T) {
	values := url.Values{
		"orderNumber": {"77"},
		"type":        {"ONE_DAY_DELIVERY"},
		"priority":    {"HIGH"},
		"warehouse":   {" Склад 3 "},
		"dateFrom":    {"2026-05-01"},
		"status":      {"CREATED,INCORRECT"},
		"sortBy":      {"orderNumber"},
		"sortOrder":   {"ASC"},
	}

	filter := ParseRequestFilter(values)

	require.NotNil(t, filter.OrderNumber)
	assert.Equal(t, uint64(77), *filter.OrderNumber)
	require.NotNil(t, filter.Type)
	assert.Equal(t, entities.TypeOneDayDelivery, *filter.Type)
	require.NotNil(t, filter.Priority)
	assert.Equal(t, entities.PriorityHigh, *filter.Priority)
	assert.Equal(t, "Склад 3", filter.Warehouse)
	require.NotNil(t, filter.DateFrom)
	assert.Equal(t, 2026, filter.DateFrom.Year())
	assert.Equal(t, []entities.RequestStatus{entities.StatusCreated, entities.StatusIncorrect}, filter.Statuses)
	assert.Equal(t, "orderNumber", filter.SortBy)
	assert.Equal(t, "asc", filter.SortOrder)
}

func TestParseRequestFilterDropsGarbage(t *testing.T) {
	values := url.Values{
		"orderNumber": {"не число"},
		"type":        {"TELEPORT"},
		"priority":    {"URGENT"},
		"dateFrom":    {"01.05.2026"},
		"status":      {"CREATED,BROKEN"},
		"sortOrder":   {"sideways"},
	}

	filter := ParseRequestFilter(values)

	// Мусорные значения сужения не дают — фильтр просто молчит.
	assert.Nil(t, filter.OrderNumber)
	assert.Nil(t, filter.Type)
	assert.Nil(t, filter.Priority)
	assert.Nil(t, filter.DateFrom)
	assert.Equal(t, []entities.RequestStatus{entities.StatusCreated}, filter.Statuses)
	assert.Equal(t, "desc", filter.SortOrder)
}
