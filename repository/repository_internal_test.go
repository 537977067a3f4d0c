package repository

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Govind-619/inventory-manager/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"translated foreign key", gorm.ErrForeignKeyViolated, http.StatusConflict},
		{"pg unique", &pgconn.PgError{Code: PgErrUniqueViolation}, http.StatusConflict},
		{"pg foreign key", &pgconn.PgError{Code: PgErrForeignKeyViolation}, http.StatusConflict},
		{"pg check", &pgconn.PgError{Code: PgErrCheckViolation}, http.StatusBadRequest},
		{"pg not null", &pgconn.PgError{Code: PgErrNotNullViolation}, http.StatusBadRequest},
		{"pg truncation", &pgconn.PgError{Code: PgErrStringDataRightTruncation}, http.StatusBadRequest},
		{"pg out of range", &pgconn.PgError{Code: PgErrNumericValueOutOfRange}, http.StatusBadRequest},
		{"pg other", &pgconn.PgError{Code: "40001"}, http.StatusInternalServerError},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
		{"app error passes through", utils.NotFoundError("Item not found", nil), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyError(tt.err, "save thing")
			assert.Equal(t, tt.want, utils.StatusCode(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestClassifyErrorHidesCause(t *testing.T) {
	err := classifyError(errors.New("pq: password authentication failed"), "fetch items")

	appErr := utils.GetAppError(err)
	if assert.NotNil(t, appErr) {
		assert.Equal(t, "Failed to fetch items", appErr.Message)
		assert.NotContains(t, appErr.Message, "password")
	}
}

func TestClassifyErrorNil(t *testing.T) {
	assert.NoError(t, classifyError(nil, "anything"))
}
