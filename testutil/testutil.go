// Package testutil provides a throwaway database and HTTP helpers for tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Govind-619/inventory-manager/models"
	"github.com/Govind-619/inventory-manager/repository"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated SQLite database in a temp directory with
// foreign keys enforced. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "inventory.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.New(db).Migrate(context.Background()))
	return db
}

// NewTestRepository returns a repository over a fresh test database
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()
	return repository.New(NewTestDB(t))
}

// CreateTestCategory creates a category whose characteristics are given as
// name → displayed name pairs
func CreateTestCategory(t *testing.T, repo *repository.Repository, name string, characteristics ...[2]string) *models.Category {
	t.Helper()

	input := repository.NewCategory{Name: name}
	for _, ch := range characteristics {
		input.Characteristics = append(input.Characteristics, repository.NewCharacteristic{Name: ch[0], DisplayedName: ch[1]})
	}
	category, err := repo.CreateCategory(context.Background(), input)
	require.NoError(t, err)
	return category
}

// CreateTestItem creates an item in category with the given values keyed
// by characteristic id
func CreateTestItem(t *testing.T, repo *repository.Repository, categoryID uint, name string, values map[uint]string) *models.Item {
	t.Helper()

	input := repository.NewItem{
		Name:       name,
		Quantity:   1,
		Price:      decimal.RequireFromString("9.99"),
		CategoryID: categoryID,
	}
	for id, value := range values {
		input.Values = append(input.Values, repository.ValueInput{CharacteristicID: id, Value: value})
	}
	item, err := repo.CreateItem(context.Background(), input)
	require.NoError(t, err)
	return item
}

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	RawBody string
	Headers map[string]string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Header     http.Header
	Raw        []byte
}

// Decode unmarshals the response body into v
func (r TestResponse) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Raw, v), "body: %s", r.Raw)
}

// ErrorMessage returns the "error" field of a JSON error body
func (r TestResponse) ErrorMessage(t *testing.T) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	r.Decode(t, &body)
	return body.Error
}

// MakeTestRequest sends a request through the router and records the response
func MakeTestRequest(t *testing.T, router http.Handler, req TestRequest) TestResponse {
	t.Helper()

	var body []byte
	switch {
	case req.RawBody != "":
		body = []byte(req.RawBody)
	case req.Body != nil:
		var err error
		body, err = json.Marshal(req.Body)
		require.NoError(t, err)
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, bytes.NewBuffer(body))
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	return TestResponse{
		StatusCode: w.Code,
		Header:     w.Header(),
		Raw:        w.Body.Bytes(),
	}
}

func init() {
	gin.SetMode(gin.TestMode)
}
