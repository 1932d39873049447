package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"request-tracker/pkg/customvalidator"
	apperrors "request-tracker/pkg/errors"
	"request-tracker/pkg/utils"
)

func newTestValidator(t *testing.T) *utils.Validator {
	t.Helper()
	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))
	return utils.NewValidator(v)
}

func validCreatePayload() CreateRequestDTO {
	return CreateRequestDTO{
		Type:              "SAMPLING",
		SalesOrganization: "SALES_3803",
		Priority:          "MEDIUM",
		Warehouse:         "Склад 7",
		Date:              time.Now(),
		Comment:           "нужны образцы",
		ODNumber:          []string{"OD1234", "9876543210"},
	}
}

func TestCreateRequestDTOValidPayload(t *testing.T) {
	cv := newTestValidator(t)

	payload := validCreatePayload()
	assert.NoError(t, cv.Validate(&payload))
}

func TestCreateRequestDTOEmptyWarehouseRejected(t *testing.T) {
	cv := newTestValidator(t)

	payload := validCreatePayload()
	payload.Warehouse = ""

	err := cv.Validate(&payload)
	require.Error(t, err)

	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
}

func TestCreateRequestDTOODNumberLimits(t *testing.T) {
	cv := newTestValidator(t)

	// Одиннадцать элементов — на один больше допустимого.
	payload := validCreatePayload()
	payload.ODNumber = []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11"}
	assert.Error(t, cv.Validate(&payload))

	// Ровно десять — верхняя граница проходит.
	payload.ODNumber = payload.ODNumber[:10]
	assert.NoError(t, cv.Validate(&payload))
}

func TestCreateRequestDTOODNumberEntryFormat(t *testing.T) {
	cv := newTestValidator(t)

	testCases := []struct {
		name  string
		entry string
		valid bool
	}{
		{"буквы и цифры", "OD12345678", true},
		{"одиннадцать символов", "OD123456789", false},
		{"дефис", "OD-123", false},
		{"пробел", "OD 123", false},
		{"пустой элемент", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validCreatePayload()
			payload.ODNumber = []string{tc.entry}

			err := cv.Validate(&payload)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCreateRequestDTOResourceRequiredForOneDayDelivery(t *testing.T) {
	cv := newTestValidator(t)

	payload := validCreatePayload()
	payload.Type = "ONE_DAY_DELIVERY"
	payload.Resource = ""
	assert.Error(t, cv.Validate(&payload))

	payload.Resource = "Газель"
	assert.NoError(t, cv.Validate(&payload))

	// Для остальных типов ресурс не обязателен.
	other := validCreatePayload()
	other.Resource = ""
	assert.NoError(t, cv.Validate(&other))
}

func TestCreateRequestDTOFieldBounds(t *testing.T) {
	cv := newTestValidator(t)

	payload := validCreatePayload()
	payload.Comment = strings.Repeat("к", 1001)
	assert.Error(t, cv.Validate(&payload))

	payload = validCreatePayload()
	payload.Type = "TELEPORT"
	assert.Error(t, cv.Validate(&payload))

	payload = validCreatePayload()
	payload.SalesOrganization = "SALES_9999"
	assert.Error(t, cv.Validate(&payload))

	payload = validCreatePayload()
	payload.Priority = "URGENT"
	assert.Error(t, cv.Validate(&payload))
}
