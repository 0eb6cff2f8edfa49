package models

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"size:255;not null"         json:"name"`
	Price       float64 `gorm:"not null"                  json:"price"`
	Description *string `gorm:"size:255"                  json:"description"`
}

func (Product) TableName() string {
	return "products"
}

// CartItem is a row of the single shared cart. One row per product is
// kept by the add operation; the schema does not enforce it.
type CartItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"     json:"id"`
	ProductID uint    `gorm:"index;not null"               json:"product_id"`
	Product   Product `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Quantity  int     `gorm:"not null"                     json:"quantity"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
