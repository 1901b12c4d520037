package models

import "time"

// Product represents a product entity in the inventory system.
// Price is stored in whole cents.
type Product struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}
