package models

import (
	"context"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	*Repository[Product]
}

func NewProductsRepository(db *gorm.DB) (*ProductsRepository, error) {
	repo, err := NewRepository[Product](db)
	if err != nil {
		return nil, err
	}
	return &ProductsRepository{Repository: repo}, nil
}

// FindByCategoryID pages through the products of one category.
// An unknown category yields an empty page.
func (r *ProductsRepository) FindByCategoryID(ctx context.Context, categoryID uint, p Pageable) (Page[Product], error) {
	return r.findPage(ctx, p, func(q *gorm.DB) *gorm.DB {
		return q.Where("category_id = ?", categoryID)
	})
}
