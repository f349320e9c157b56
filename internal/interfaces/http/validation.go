package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/marketplace-backoffice/internal/domain"
)

var validate = newValidator()

// maxMoney primer valor que no cabe en NUMERIC(12,2).
var maxMoney = decimal.New(1, 10)

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal como tipo numérico: gte=0, required, etc. funcionan sobre su valor.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	if err := v.RegisterValidation("money", validMoney); err != nil {
		panic(err)
	}
	// Los errores se reportan con el nombre JSON del campo, no el de Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindAndValidate decodifica el cuerpo JSON de forma estricta (campos desconocidos = error)
// y aplica las reglas validate de req. Siempre devuelve *domain.ValidationError si falla.
func bindAndValidate(c *fiber.Ctx, req interface{}) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return domain.NewValidationError("cuerpo JSON requerido", nil)
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return domain.NewValidationError("se esperaba un único objeto JSON", nil)
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return domain.NewValidationError(err.Error(), nil)
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = describe(fe)
		}
		return domain.NewValidationError("datos inválidos", fields)
	}
	return nil
}

// validMoney admite como mucho 10 dígitos enteros y 2 decimales. fl.Field() ya llega convertido
// a float64 por la función de tipo, así que se lee el decimal original del struct padre.
func validMoney(fl validator.FieldLevel) bool {
	raw := fl.Parent().FieldByName(fl.StructFieldName())
	if raw.Kind() == reflect.Ptr {
		if raw.IsNil() {
			return true
		}
		raw = raw.Elem()
	}
	d, ok := raw.Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.Equal(d.Truncate(2)) && d.Abs().LessThan(maxMoney)
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.NewValidationError("JSON mal formado", nil)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return domain.NewValidationError("el cuerpo debe ser un objeto JSON", nil)
		}
		return domain.FieldError(field, "tipo inválido, se esperaba "+typeErr.Type.String())
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return domain.FieldError(field, "campo no permitido")
	default:
		return domain.NewValidationError("JSON inválido: "+err.Error(), nil)
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "requerido"
	case "email":
		return "email inválido"
	case "min":
		return "longitud mínima " + fe.Param()
	case "max":
		return "longitud máxima " + fe.Param()
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "lte":
		return "debe ser menor o igual a " + fe.Param()
	case "money":
		return "máximo 10 dígitos enteros y 2 decimales"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	default:
		return "no cumple la regla " + fe.Tag()
	}
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.FieldError("id", "debe ser un entero positivo")
	}
	return id, nil
}
