package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// RequestType — тип бизнес-операции.
type RequestType string

const (
	TypeOneDayDelivery   RequestType = "ONE_DAY_DELIVERY"
	TypeCorrectionSale   RequestType = "CORRECTION_SALE"
	TypeCorrectionReturn RequestType = "CORRECTION_RETURN"
	TypeSampling         RequestType = "SAMPLING"
)

func (t RequestType) Valid() bool {
	switch t {
	case TypeOneDayDelivery, TypeCorrectionSale, TypeCorrectionReturn, TypeSampling:
		return true
	}
	return false
}

// SalesOrganization — код сбытовой организации, шесть фиксированных значений.
type SalesOrganization string

const (
	Sales3801 SalesOrganization = "SALES_3801"
	Sales3802 SalesOrganization = "SALES_3802"
	Sales3803 SalesOrganization = "SALES_3803"
	Sales3804 SalesOrganization = "SALES_3804"
	Sales3805 SalesOrganization = "SALES_3805"
	Sales3806 SalesOrganization = "SALES_3806"
)

func (s SalesOrganization) Valid() bool {
	switch s {
	case Sales3801, Sales3802, Sales3803, Sales3804, Sales3805, Sales3806:
		return true
	}
	return false
}

// RequestPriority — приоритет заявки, поле необязательное.
type RequestPriority string

const (
	PriorityMedium RequestPriority = "MEDIUM"
	PriorityHigh   RequestPriority = "HIGH"
)

func (p RequestPriority) Valid() bool {
	return p == PriorityMedium || p == PriorityHigh
}

// ODNumberSeparator — OD-номера храним одной строкой через "|".
const ODNumberSeparator = "|"

// Request — заявка. OrderNumber — человекочитаемый последовательный ключ,
// выдаётся сиквенсом БД при вставке и никогда не пересчитывается клиентом.
type Request struct {
	ID                uuid.UUID         `json:"id"`
	OrderNumber       uint64            `json:"orderNumber"`
	Type              RequestType       `json:"type"`
	SalesOrganization SalesOrganization `json:"salesOrganization"`
	Priority          null.String       `json:"priority"`
	Warehouse         string            `json:"warehouse"`
	Date              time.Time         `json:"date"`
	Comment           string            `json:"comment"`
	Resource          null.String       `json:"resource"`
	ODNumber          null.String       `json:"odNumber"`
	Status            RequestStatus     `json:"status"`
	UserID            uuid.UUID         `json:"userId"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// IsOwnedBy — является ли пользователь создателем заявки.
func (r *Request) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}
