package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	*Repository[Category]
}

func NewCategoriesRepository(db *gorm.DB) (*CategoriesRepository, error) {
	repo, err := NewRepository[Category](db)
	if err != nil {
		return nil, err
	}
	return &CategoriesRepository{Repository: repo}, nil
}

// DeleteByID removes the category and all of its products in one transaction.
func (r *CategoriesRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find category %d: %w", id, err)
		}
		if err := tx.Select("Products").Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category %d: %w", id, translateError(err))
		}
		return nil
	})
}
