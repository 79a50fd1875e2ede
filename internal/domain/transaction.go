package domain

import "time"

// Transaction Model
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`             // Primary key assigned by the store
	Title       string    `gorm:"size:255" json:"title"`            // Product title
	Description string    `gorm:"type:text" json:"description"`     // Free-form description
	Price       float64   `gorm:"not null" json:"price"`            // Sale price
	Category    string    `gorm:"size:64;index" json:"category"`    // Low-cardinality category name
	DateOfSale  time.Time `gorm:"not null;index" json:"dateOfSale"` // Sale timestamp, stored in UTC
	Sold        bool      `gorm:"not null" json:"sold"`             // Whether the item was sold
}

// Statistics is the monthly sales summary
type Statistics struct {
	TotalSales   float64 `json:"totalSales"`   // Sum of price over the interval
	SoldItems    int64   `json:"soldItems"`    // Records with sold = true
	NotSoldItems int64   `json:"notSoldItems"` // Records with sold = false
}

// CategoryCount is one slice of the pie chart
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// Combined bundles every monthly view into one response
type Combined struct {
	Transactions []Transaction   `json:"transactions"`
	Statistics   Statistics      `json:"statistics"`
	BarChart     []BarChartEntry `json:"barChart"`
	PieChart     []CategoryCount `json:"pieChart"`
}
