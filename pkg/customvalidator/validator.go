package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует доменные правила валидации.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("od_entry", isODNumberEntry); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	return nil
}

var odEntryRegex = regexp.MustCompile(`^[a-zA-Z0-9]{1,10}$`)

// Одна позиция OD-номера: до 10 букв/цифр, без разделителей.
func isODNumberEntry(fl validator.FieldLevel) bool {
	return odEntryRegex.MatchString(fl.Field().String())
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}
