package repository

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/truestate/sales-dashboard/internal/model"
	"github.com/truestate/sales-dashboard/pkg/pg"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testDB struct {
	*pg.DB
	rawDB *gorm.DB
}

func setupTestDB(t *testing.T) *testDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&TransactionEntity{})
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return &testDB{
		DB:    pgDB,
		rawDB: db,
	}
}

func newTestTransaction(mutate func(*model.Transaction)) *model.Transaction {
	txn := &model.Transaction{
		CustomerID:      "CUST-001",
		CustomerName:    "Asha Rao",
		PhoneNumber:     "9876543210",
		Gender:          "Female",
		Age:             30,
		CustomerRegion:  "South",
		CustomerType:    "Retail",
		ProductID:       "PROD-001",
		ProductName:     "Noise Cancelling Headphones",
		Brand:           "Acme",
		ProductCategory: "Electronics",
		Tags:            []string{"Wireless", "Gadgets"},
		Quantity:        2,
		PricePerUnit:    50,
		DiscountPercent: 10,
		TotalAmount:     100,
		FinalAmount:     90,
		Date:            time.Now().Add(-24 * time.Hour),
		PaymentMethod:   "UPI",
		OrderStatus:     "Delivered",
		DeliveryType:    "Home Delivery",
		StoreID:         "STORE-01",
		StoreLocation:   "Bengaluru",
		SalespersonID:   "EMP-09",
		EmployeeName:    "Kiran Shetty",
	}
	if mutate != nil {
		mutate(txn)
	}
	return txn
}
