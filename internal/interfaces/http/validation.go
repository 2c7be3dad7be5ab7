package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patrimonio-api/internal/domain"
)

var validate = validator.New()

func init() {
	// Los mensajes usan el nombre JSON del campo.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// validateStruct corre las etiquetas validate y devuelve un ValidationError legible.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.Invalid("Dados inválidos.")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return domain.Invalid("%s", strings.Join(msgs, " "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "O campo '" + fe.Field() + "' é obrigatório."
	case "email":
		return "O campo '" + fe.Field() + "' deve ser um e-mail válido."
	case "oneof":
		return "O campo '" + fe.Field() + "' deve ser um de: " + fe.Param() + "."
	case "min", "max", "gt", "gte":
		return "O campo '" + fe.Field() + "' está fora do limite (" + fe.Tag() + "=" + fe.Param() + ")."
	default:
		return "O campo '" + fe.Field() + "' é inválido."
	}
}

// bindJSON parsea el cuerpo y lo valida. Devuelve el error listo para writeError.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Invalid("Corpo da requisição inválido.")
	}
	return validateStruct(out)
}

// paramID lee un parámetro de ruta numérico positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("ID inválido.")
	}
	return int64(id), nil
}
