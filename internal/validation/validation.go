// Package validation centraliza el validator de structs usado por los services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Letras, dígitos, espacio y los caracteres @ . + - _
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9 @.+\-_]+$`)

// New crea un validator que reporta los campos por su nombre JSON
// y registra las reglas propias de la aplicación.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// Las reglas propias no pueden fallar al registrarse: los tags son constantes.
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return validate
}

// Fields traduce los errores del validator a mensajes por campo.
// Devuelve nil si err no es un error de validación.
func Fields(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = message(fieldError)
	}
	return fields
}

func message(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldError.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldError.Param())
	case "eqfield":
		return "does not match " + fieldError.Param()
	case "username":
		return "may only contain letters, digits, spaces and @/./+/-/_"
	default:
		return "is invalid"
	}
}
