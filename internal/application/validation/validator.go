// Package validation traduce las etiquetas validate:"..." de los DTOs a *domain.ValidationError.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Los errores se reportan con el nombre json del campo.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// decimal.Decimal se valida como número (gte, lte, ...).
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		// notblank rechaza textos que solo tienen espacios.
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
			return decimalPlaces(fl.Field().Float()) <= 2
		})
		instance = v
	})
	return instance
}

// decimalPlaces cuenta los decimales significativos de f.
func decimalPlaces(f float64) int32 {
	d := decimal.NewFromFloat(f)
	if d.Exponent() >= 0 {
		return 0
	}
	return -d.Exponent()
}

// Struct valida s. Devuelve nil o un *domain.ValidationError con un mensaje por campo.
func Struct(s interface{}) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &domain.ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, exists := out.Fields[fe.Field()]; exists {
			continue
		}
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "Este campo es obligatorio."
	case "email":
		return "Introduzca una dirección de correo electrónico válida."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Asegúrese de que este valor tenga como máximo %s caracteres.", fe.Param())
		}
		return fmt.Sprintf("Asegúrese de que este valor sea menor o igual a %s.", fe.Param())
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Asegúrese de que este valor tenga al menos %s caracteres.", fe.Param())
		}
		return fmt.Sprintf("Asegúrese de que este valor sea mayor o igual a %s.", fe.Param())
	case "oneof":
		return "Escoja una opción válida."
	case "uuid":
		return "Seleccione una opción válida."
	case "money":
		return "Asegúrese de que no haya más de 2 decimales."
	default:
		return "Valor inválido."
	}
}
