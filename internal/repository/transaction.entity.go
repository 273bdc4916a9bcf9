package repository

import (
	"strings"
	"time"

	"github.com/truestate/sales-dashboard/internal/model"
)

// TransactionEntity is the stored row. Tags are kept as a comma-joined text
// column, the same encoding the CSV source uses; the model exposes them as a
// slice.
type TransactionEntity struct {
	ID int64 `db:"id" gorm:"primaryKey;autoIncrement;column:id"`

	CustomerID     string `db:"customer_id"     gorm:"column:customer_id;not null"`
	CustomerName   string `db:"customer_name"   gorm:"column:customer_name;not null;index"`
	PhoneNumber    string `db:"phone_number"    gorm:"column:phone_number;not null;index"`
	Gender         string `db:"gender"          gorm:"column:gender"`
	Age            int    `db:"age"             gorm:"column:age"`
	CustomerRegion string `db:"customer_region" gorm:"column:customer_region"`
	CustomerType   string `db:"customer_type"   gorm:"column:customer_type"`

	ProductID       string `db:"product_id"       gorm:"column:product_id;not null"`
	ProductName     string `db:"product_name"     gorm:"column:product_name;not null"`
	Brand           string `db:"brand"            gorm:"column:brand"`
	ProductCategory string `db:"product_category" gorm:"column:product_category;index"`
	Tags            string `db:"tags"             gorm:"column:tags"`

	Quantity        int     `db:"quantity"         gorm:"column:quantity;not null"`
	PricePerUnit    float64 `db:"price_per_unit"   gorm:"column:price_per_unit;not null"`
	DiscountPercent float64 `db:"discount_percent" gorm:"column:discount_percent;default:0"`
	TotalAmount     float64 `db:"total_amount"     gorm:"column:total_amount;not null"`
	FinalAmount     float64 `db:"final_amount"     gorm:"column:final_amount;not null"`

	Date          time.Time `db:"date"           gorm:"column:date;not null;index"`
	PaymentMethod string    `db:"payment_method" gorm:"column:payment_method"`
	OrderStatus   string    `db:"order_status"   gorm:"column:order_status"`
	DeliveryType  string    `db:"delivery_type"  gorm:"column:delivery_type"`
	StoreID       string    `db:"store_id"       gorm:"column:store_id"`
	StoreLocation string    `db:"store_location" gorm:"column:store_location"`
	SalespersonID string    `db:"salesperson_id" gorm:"column:salesperson_id"`
	EmployeeName  string    `db:"employee_name"  gorm:"column:employee_name"`

	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (TransactionEntity) TableName() string { return "transactions" }

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		CustomerName:    m.CustomerName,
		PhoneNumber:     m.PhoneNumber,
		Gender:          m.Gender,
		Age:             m.Age,
		CustomerRegion:  m.CustomerRegion,
		CustomerType:    m.CustomerType,
		ProductID:       m.ProductID,
		ProductName:     m.ProductName,
		Brand:           m.Brand,
		ProductCategory: m.ProductCategory,
		Tags:            joinTags(m.Tags),
		Quantity:        m.Quantity,
		PricePerUnit:    m.PricePerUnit,
		DiscountPercent: m.DiscountPercent,
		TotalAmount:     m.TotalAmount,
		FinalAmount:     m.FinalAmount,
		Date:            m.Date,
		PaymentMethod:   m.PaymentMethod,
		OrderStatus:     m.OrderStatus,
		DeliveryType:    m.DeliveryType,
		StoreID:         m.StoreID,
		StoreLocation:   m.StoreLocation,
		SalespersonID:   m.SalespersonID,
		EmployeeName:    m.EmployeeName,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:              e.ID,
		CustomerID:      e.CustomerID,
		CustomerName:    e.CustomerName,
		PhoneNumber:     e.PhoneNumber,
		Gender:          e.Gender,
		Age:             e.Age,
		CustomerRegion:  e.CustomerRegion,
		CustomerType:    e.CustomerType,
		ProductID:       e.ProductID,
		ProductName:     e.ProductName,
		Brand:           e.Brand,
		ProductCategory: e.ProductCategory,
		Tags:            splitTags(e.Tags),
		Quantity:        e.Quantity,
		PricePerUnit:    e.PricePerUnit,
		DiscountPercent: e.DiscountPercent,
		TotalAmount:     e.TotalAmount,
		FinalAmount:     e.FinalAmount,
		Date:            e.Date,
		PaymentMethod:   e.PaymentMethod,
		OrderStatus:     e.OrderStatus,
		DeliveryType:    e.DeliveryType,
		StoreID:         e.StoreID,
		StoreLocation:   e.StoreLocation,
		SalespersonID:   e.SalespersonID,
		EmployeeName:    e.EmployeeName,
		CreatedAt:       e.CreatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
