package utils

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuantity(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		want    int
		wantErr bool
	}{
		{"integer", 5, 5, false},
		{"zero", 0, 0, false},
		{"fraction floors", 3.7, 3, false},
		{"below one floors to zero", 0.2, 0, false},
		{"max", MaxQuantity, MaxQuantity, false},
		{"negative", -1, 0, true},
		{"small negative", -0.5, 0, true},
		{"too large", MaxQuantity + 1, 0, true},
		{"NaN", math.NaN(), 0, true},
		{"infinity", math.Inf(1), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeQuantity(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsBadRequestError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRequiredString(t *testing.T) {
	assert.NoError(t, ValidateRequiredString("name", "Phones", MaxNameLength))
	assert.EqualError(t, ValidateRequiredString("name", "  \t", MaxNameLength), "name: is required")
	assert.EqualError(t, ValidateRequiredString("name", strings.Repeat("x", 6), 5), "name: must not exceed 5 characters")
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(decimal.Zero))
	assert.NoError(t, ValidatePrice(decimal.RequireFromString("9999999999.99")))
	assert.EqualError(t, ValidatePrice(decimal.NewFromInt(-1)), "price: cannot be negative")
	assert.EqualError(t, ValidatePrice(decimal.New(1, 10)), "price: is too large")
}

type bindingProbe struct {
	Name     string           `json:"name" binding:"required,max=5"`
	Quantity *int             `json:"quantity" binding:"required,gte=0"`
	Price    *decimal.Decimal `json:"price"`
	Tags     []string         `json:"tags"`
}

func bindProbe(t *testing.T, body string) error {
	t.Helper()
	UseJSONFieldNames()
	var probe bindingProbe
	err := json.Unmarshal([]byte(body), &probe)
	if err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(&probe)
}

func TestBindingErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing field", `{"quantity": 1}`, "name: is required"},
		{"too long", `{"name": "abcdefg", "quantity": 1}`, "name: must not exceed 5 characters"},
		{"below minimum", `{"name": "a", "quantity": -2}`, "quantity: must be at least 0"},
		{"several fields", `{}`, "name: is required; quantity: is required"},
		{"wrong type number", `{"name": "a", "quantity": "lots"}`, "quantity: must be a number"},
		{"wrong type array", `{"name": "a", "quantity": 1, "tags": "x"}`, "tags: must be an array"},
		{"bad decimal", `{"name": "a", "quantity": 1, "price": "cheap"}`, "price: must be a decimal number"},
		{"syntax", `{"name": }`, "Request body must be valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bindProbe(t, tt.body)
			require.Error(t, err)
			assert.Equal(t, tt.want, BindingErrorMessage(err))
		})
	}
}
