package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/domain/errs"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator devolve a instância compartilhada; os campos são nomeados pela tag json
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateStruct valida s e converte as falhas em *errs.ValidationError
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fieldPath(fe)] = validationMessage(fe)
	}
	return &errs.ValidationError{Message: "Datos inválidos", Fields: fields}
}

// fieldPath tira o nome do struct raiz do namespace ("payload.questions[0].text" -> "questions[0].text")
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obligatorio"
	case "email":
		return "correo inválido"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "oneof":
		return "valor no permitido; use " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gtfield", "gtefield":
		return "debe ser posterior a " + fe.Param()
	default:
		return "valor inválido"
	}
}
