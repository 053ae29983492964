package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/flatrock-dev/quotequiz-service/internal/errors"
	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct validator with the service's custom rules.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{structValidator: structValidator}
}

// Validate validates struct tags and converts failures to the shared
// ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

func validateQuizMode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.ModeBinary) || value == string(models.ModeMultipleChoice)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.RoleAdmin) || value == string(models.RoleUser)
}

// registerCustomValidators registers all custom validators
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("quiz_mode", validateQuizMode)
	validate.RegisterValidation("user_role", validateUserRole)

	// Report field names from json tags for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
