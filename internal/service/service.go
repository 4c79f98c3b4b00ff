// Package service holds one typed wrapper per backend resource. Each
// service validates its payloads client-side (basic form validation
// only — business rules stay on the server) and delegates transport,
// auth and error classification to the httpclient core.
package service

import (
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"modavintage/internal/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags
	// like min=0, gt=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// checkPayload runs validator tags over req and converts failures into
// a user-facing validation error.
func checkPayload(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok || len(verrs) == 0 {
			return apierror.New(apierror.KindValidation, "Dados inválidos.")
		}
		return apierror.New(apierror.KindValidation, validationMessage(verrs[0]))
	}
	return nil
}

// fieldLabels translates payload field names for validation messages.
var fieldLabels = map[string]string{
	"Nome":       "nome",
	"Telefone":   "telefone",
	"Email":      "e-mail",
	"CNPJ":       "CNPJ",
	"Contato":    "contato",
	"Preco":      "preço de venda",
	"PrecoCusto": "preço de custo",
	"Estoque":    "estoque",
	"Tamanho":    "tamanho",
	"Categoria":  "categoria",
}

func validationMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = strings.ToLower(fe.Field())
	}
	switch fe.Tag() {
	case "required":
		return "Informe o campo " + label + "."
	case "email":
		return "O " + label + " informado não é válido."
	case "gt":
		return "O campo " + label + " deve ser maior que zero."
	case "min":
		if fe.Kind() == reflect.String {
			return "O campo " + label + " é muito curto."
		}
		return "O campo " + label + " não pode ser negativo."
	case "max":
		return "O campo " + label + " é muito longo."
	default:
		return "O campo " + label + " é inválido."
	}
}

// sortByNome orders items by a case-insensitive name key. The /todos
// endpoints give no ordering guarantee, and the selection prompts
// expect alphabetical lists.
func sortByNome[T any](items []T, key func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(key(items[i])) < strings.ToLower(key(items[j]))
	})
}

// pageQuery builds the standard Spring pagination query string.
func pageQuery(page, size int, sort string) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if sort != "" {
		q.Set("sort", sort)
	}
	return q
}
