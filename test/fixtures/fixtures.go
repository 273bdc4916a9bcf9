package fixtures

import (
	"time"

	"github.com/truestate/sales-dashboard/internal/model"
)

// NewTransaction returns a fully populated record; mutate tweaks it per test.
func NewTransaction(mutate func(*model.Transaction)) *model.Transaction {
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

// YoungRecent and OldStale are the canonical two-record scenario: one young
// customer with a fresh discounted purchase, one older customer with a
// year-old undiscounted one.
func YoungRecent() *model.Transaction {
	return NewTransaction(func(x *model.Transaction) {
		x.Age = 20
		x.Date = time.Now()
		x.FinalAmount = 90
		x.TotalAmount = 100
	})
}

func OldStale() *model.Transaction {
	return NewTransaction(func(x *model.Transaction) {
		x.CustomerName = "Ravi Kumar"
		x.PhoneNumber = "9123456780"
		x.Age = 60
		x.Date = time.Now().AddDate(0, 0, -400)
		x.FinalAmount = 50
		x.TotalAmount = 50
		x.Quantity = 1
	})
}
