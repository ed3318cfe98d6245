package models

// Category represents a product category.
// Deleting a category removes every product that references it.
type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CategoryName string    `json:"categoryName"`
	Products     []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Category) TableName() string {
	return "product_category"
}
