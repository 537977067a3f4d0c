package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

const (
	// MaxNameLength bounds category, characteristic and item names
	MaxNameLength = 255
	// MaxQuantity is the largest quantity a row can hold
	MaxQuantity = math.MaxInt32
)

var registerTagNames sync.Once

// UseJSONFieldNames makes binding errors report json field names
// ("displayedName") instead of Go field names ("DisplayedName").
func UseJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// BindingErrorMessage turns a ShouldBindJSON error into a client-safe message
func BindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var fields FieldValidationErrors
		for _, fe := range verrs {
			fields = append(fields, FieldValidationError{Field: fe.Namespace()[strings.Index(fe.Namespace(), ".")+1:], Message: describeTag(fe)})
		}
		return fields.Error()
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field != "" {
			return fmt.Sprintf("%s: must be %s", typeErr.Field, describeType(typeErr.Type))
		}
		return "Invalid request body"
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "Request body must be valid JSON"
	}

	// decimal.Decimal reports its own parse failures
	if strings.Contains(err.Error(), "decimal") {
		return "price: must be a decimal number"
	}
	return "Invalid request body"
}

func describeType(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Bool:
		return "a boolean"
	default:
		return "an object"
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte", "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte", "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	default:
		return "is invalid"
	}
}

// ValidateRequiredString checks that a trimmed string is present and not too long
func ValidateRequiredString(field, value string, max int) error {
	length := len(strings.TrimSpace(value))
	if length == 0 {
		return FieldValidationErrors{{Field: field, Message: "is required"}}
	}
	if length > max {
		return FieldValidationErrors{{Field: field, Message: fmt.Sprintf("must not exceed %d characters", max)}}
	}
	return nil
}

// ValidatePrice validates a price
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return FieldValidationErrors{{Field: "price", Message: "cannot be negative"}}
	}
	// numeric(12,2)
	if price.Abs().GreaterThanOrEqual(decimal.New(1, 10)) {
		return FieldValidationErrors{{Field: "price", Message: "is too large"}}
	}
	return nil
}

// NormalizeQuantity checks a requested quantity and floors it to an integer
func NormalizeQuantity(quantity float64) (int, error) {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity < 0 {
		return 0, BadRequestError("Quantity must be a number and cannot be less than 0", nil)
	}
	floored := math.Floor(quantity)
	if floored > MaxQuantity {
		return 0, BadRequestError(fmt.Sprintf("Quantity must not exceed %d", MaxQuantity), nil)
	}
	return int(floored), nil
}
