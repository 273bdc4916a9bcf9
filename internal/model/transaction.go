package model

import (
	"time"
)

// Transaction is a single sales record. Records are written once by the bulk
// loader and never updated afterwards; the API only reads them.
type Transaction struct {
	ID int64 `json:"id" db:"id" gorm:"primaryKey;autoIncrement;column:id"`

	CustomerID     string `json:"customerID"     db:"customer_id"     gorm:"column:customer_id;not null"`
	CustomerName   string `json:"customerName"   db:"customer_name"   gorm:"column:customer_name;not null;index"`
	PhoneNumber    string `json:"phoneNumber"    db:"phone_number"    gorm:"column:phone_number;not null;index"`
	Gender         string `json:"gender"         db:"gender"          gorm:"column:gender"` // Male | Female | Other
	Age            int    `json:"age"            db:"age"             gorm:"column:age"`
	CustomerRegion string `json:"customerRegion" db:"customer_region" gorm:"column:customer_region"`
	CustomerType   string `json:"customerType"   db:"customer_type"   gorm:"column:customer_type"`

	ProductID       string   `json:"productID"       db:"product_id"       gorm:"column:product_id;not null"`
	ProductName     string   `json:"productName"     db:"product_name"     gorm:"column:product_name;not null"`
	Brand           string   `json:"brand"           db:"brand"            gorm:"column:brand"`
	ProductCategory string   `json:"productCategory" db:"product_category" gorm:"column:product_category;index"`
	Tags            []string `json:"tags"                                  gorm:"-"`

	Quantity        int     `json:"quantity"        db:"quantity"         gorm:"column:quantity;not null"`
	PricePerUnit    float64 `json:"pricePerUnit"    db:"price_per_unit"   gorm:"column:price_per_unit;not null"`
	DiscountPercent float64 `json:"discountPercent" db:"discount_percent" gorm:"column:discount_percent;default:0"`
	TotalAmount     float64 `json:"totalAmount"     db:"total_amount"     gorm:"column:total_amount;not null"`
	FinalAmount     float64 `json:"finalAmount"     db:"final_amount"     gorm:"column:final_amount;not null"`

	Date          time.Time `json:"date"          db:"date"           gorm:"column:date;not null;index"`
	PaymentMethod string    `json:"paymentMethod" db:"payment_method" gorm:"column:payment_method"`
	OrderStatus   string    `json:"orderStatus"   db:"order_status"   gorm:"column:order_status"`
	DeliveryType  string    `json:"deliveryType"  db:"delivery_type"  gorm:"column:delivery_type"`
	StoreID       string    `json:"storeID"       db:"store_id"       gorm:"column:store_id"`
	StoreLocation string    `json:"storeLocation" db:"store_location" gorm:"column:store_location"`
	SalespersonID string    `json:"salespersonID" db:"salesperson_id" gorm:"column:salesperson_id"`
	EmployeeName  string    `json:"employeeName"  db:"employee_name"  gorm:"column:employee_name"`

	CreatedAt time.Time `json:"-" db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionStats are aggregates over the full matched set, not just the
// returned page.
type TransactionStats struct {
	TotalUnits    int64   `json:"totalUnits"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalDiscount float64 `json:"totalDiscount"`
}

// TransactionTotals is the raw sum row the store returns. TotalDiscount is
// derived from these sums, never recomputed from discountPercent.
type TransactionTotals struct {
	TotalUnits    int64   `json:"totalUnits"`
	TotalRevenue  float64 `json:"totalRevenue"`  // sum(finalAmount)
	TotalOriginal float64 `json:"totalOriginal"` // sum(totalAmount)
}

// TransactionPage is the response envelope for the listing endpoint.
type TransactionPage struct {
	Success    bool             `json:"success"`
	Count      int64            `json:"count"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Data       []*Transaction   `json:"data"`
	Stats      TransactionStats `json:"stats"`
}
