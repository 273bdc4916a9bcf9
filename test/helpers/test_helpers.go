package helpers

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/truestate/sales-dashboard/internal/model"
	"github.com/truestate/sales-dashboard/internal/repository"
	"github.com/truestate/sales-dashboard/pkg/pg"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB builds a pg.DB backed by an in-memory sqlite database, wiring
// the unexported read/write fields by reflection.
func SetupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&repository.TransactionEntity{})
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return pgDB
}

// SeedTransactions inserts the given records through the repository.
func SeedTransactions(t *testing.T, repo *repository.TransactionRepository, txns ...*model.Transaction) {
	require.NoError(t, repo.CreateBatch(context.Background(), txns))
}
