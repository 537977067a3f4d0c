package repository

import (
	"context"
	"errors"

	"github.com/Govind-619/inventory-manager/models"
	"github.com/Govind-619/inventory-manager/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes the repository classifies
const (
	// Class 23: integrity constraint violation
	PgErrNotNullViolation    = "23502" // not_null_violation
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrCheckViolation      = "23514" // check_violation

	// Class 22: data exception
	PgErrStringDataRightTruncation = "22001" // string_data_right_truncation
	PgErrNumericValueOutOfRange    = "22003" // numeric_value_out_of_range
)

// Repository is the data-access layer. It owns no connection itself:
// the *gorm.DB is opened by the caller and injected.
type Repository struct {
	db *gorm.DB
}

// New creates a repository over an open database handle
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying handle for lifecycle management
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// Migrate creates or updates the schema, including the cascade and
// restrict policies declared on the models.
func (r *Repository) Migrate(ctx context.Context) error {
	err := r.db.WithContext(ctx).AutoMigrate(
		&models.Category{},
		&models.Characteristic{},
		&models.Item{},
		&models.CharacteristicValue{},
	)
	if err != nil {
		return utils.WrapError(err, "failed to migrate database")
	}
	utils.LogInfo("Database migration completed successfully")
	return nil
}

// Ping checks that the database answers
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// classifyError maps a storage failure onto the application error taxonomy.
// AppErrors pass through untouched. The original error is kept as the
// cause for logging but never becomes the client message.
func classifyError(err error, action string) error {
	if err == nil {
		return nil
	}
	if utils.IsAppError(err) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.NotFoundError("Record not found", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return utils.ConflictError("Cannot "+action+": a record with the same unique value already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return utils.ConflictError("Cannot "+action+": it conflicts with related records", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrUniqueViolation:
			return utils.ConflictError("Cannot "+action+": a record with the same unique value already exists", err)
		case PgErrForeignKeyViolation:
			return utils.ConflictError("Cannot "+action+": it conflicts with related records", err)
		case PgErrNotNullViolation, PgErrCheckViolation, PgErrStringDataRightTruncation, PgErrNumericValueOutOfRange:
			return utils.BadRequestError("Cannot "+action+": invalid value", err)
		}
	}

	return utils.InternalError("Failed to "+action, err)
}
