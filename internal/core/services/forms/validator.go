package forms

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
)

var clock24Pattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// В ошибках используем подпись поля из тега label
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})

	_ = validate.RegisterValidation("clock24", func(fl validator.FieldLevel) bool {
		return clock24Pattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("hour12", func(fl validator.FieldLevel) bool {
		return intInRange(fl.Field().String(), 1, 12)
	})
	_ = validate.RegisterValidation("minute", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) == 2 && intInRange(fl.Field().String(), 0, 59)
	})

	return &Validator{validate: validate}
}

// Validate возвращает *domain.ValidationError со списком подписей
// неверных полей (без повторов, в порядке объявления)
func (v *Validator) Validate(form interface{}) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	fields := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		if !slices.Contains(fields, fieldError.Field()) {
			fields = append(fields, fieldError.Field())
		}
	}

	return &domain.ValidationError{Fields: fields}
}

func intInRange(str string, min, max int) bool {
	value, err := strconv.Atoi(str)
	if err != nil {
		return false
	}
	return value >= min && value <= max
}
