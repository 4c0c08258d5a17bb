package validator

import (
	"jobboard_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует доменные правила валидации
func registerCustomRules(v *validator.Validate) error {
	// provider: значение должно быть одним из поддерживаемых провайдеров
	return v.RegisterValidation("provider", func(fl validator.FieldLevel) bool {
		return models.IsValidProvider(fl.Field().String())
	})
}
