package dto

import (
	"strings"
	"time"

	"request-tracker/internal/entities"
)

type CreateRequestDTO struct {
	Type              string    `json:"type" validate:"required,oneof=ONE_DAY_DELIVERY CORRECTION_SALE CORRECTION_RETURN SAMPLING"`
	SalesOrganization string    `json:"salesOrganization" validate:"required,oneof=SALES_3801 SALES_3802 SALES_3803 SALES_3804 SALES_3805 SALES_3806"`
	Priority          string    `json:"priority" validate:"omitempty,oneof=MEDIUM HIGH"`
	Warehouse         string    `json:"warehouse" validate:"required,min=1,max=50"`
	Date              time.Time `json:"date" validate:"required"`
	Comment           string    `json:"comment" validate:"required,min=1,max=1000"`
	Resource          string    `json:"resource" validate:"required_if=Type ONE_DAY_DELIVERY,omitempty,max=100"`
	ODNumber          []string  `json:"odNumber" validate:"omitempty,max=10,dive,od_entry"`
}

// UpdateRequestDTO меняет только изменяемые поля. Статус и владелец
// через update не трогаются никогда.
//
// Обновление частичное: пустое (нулевое) значение поля означает
// «оставить как есть». Priority — указатель: nil не трогает поле,
// пустая строка сбрасывает приоритет.
type UpdateRequestDTO struct {
	Type              string    `json:"type" validate:"omitempty,oneof=ONE_DAY_DELIVERY CORRECTION_SALE CORRECTION_RETURN SAMPLING"`
	SalesOrganization string    `json:"salesOrganization" validate:"omitempty,oneof=SALES_3801 SALES_3802 SALES_3803 SALES_3804 SALES_3805 SALES_3806"`
	Priority          *string   `json:"priority" validate:"omitempty,oneof=MEDIUM HIGH"`
	Warehouse         string    `json:"warehouse" validate:"omitempty,min=1,max=50"`
	Date              time.Time `json:"date"`
	Comment           string    `json:"comment" validate:"omitempty,min=1,max=1000"`
	Resource          string    `json:"resource" validate:"omitempty,max=100"`
	ODNumber          []string  `json:"odNumber" validate:"omitempty,max=10,dive,od_entry"`
}

// RequestDTO — заявка вместе со сводкой о владельце.
type RequestDTO struct {
	ID                string   `json:"id"`
	OrderNumber       uint64   `json:"orderNumber"`
	Type              string   `json:"type"`
	SalesOrganization string   `json:"salesOrganization"`
	Priority          string   `json:"priority,omitempty"`
	Warehouse         string   `json:"warehouse"`
	Date              string   `json:"date"`
	Comment           string   `json:"comment"`
	Resource          string   `json:"resource,omitempty"`
	ODNumber          []string `json:"odNumber,omitempty"`
	Status            string   `json:"status"`
	CreatedAt         string   `json:"createdAt"`
	User              UserDTO  `json:"user"`
}

func RequestToDTO(r *entities.Request, owner *entities.User) RequestDTO {
	out := RequestDTO{
		ID:                r.ID.String(),
		OrderNumber:       r.OrderNumber,
		Type:              string(r.Type),
		SalesOrganization: string(r.SalesOrganization),
		Priority:          r.Priority.String,
		Warehouse:         r.Warehouse,
		Date:              r.Date.Format("2006-01-02"),
		Comment:           r.Comment,
		Resource:          r.Resource.String,
		Status:            r.Status.String(),
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
	}
	if r.ODNumber.Valid && r.ODNumber.String != "" {
		out.ODNumber = strings.Split(r.ODNumber.String, entities.ODNumberSeparator)
	}
	if owner != nil {
		out.User = UserToDTO(owner)
	}
	return out
}
