package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lucas/ecommerce/models"
)

// SampleCategories returns the demo catalog loaded by the seed command.
func SampleCategories() []models.Category {
	return []models.Category{
		{
			CategoryName: "Books",
			Products: []models.Product{
				sampleProduct("BOOK-TECH-1000", "Crash Course in Go", "Learn Go from the ground up.", "14.99", 100),
				sampleProduct("BOOK-TECH-1001", "Become a Postgres Guru", "Tuning, indexing and query plans.", "20.99", 100),
				sampleProduct("BOOK-TECH-1002", "Exploring HTTP APIs", "Designing resource-oriented services.", "18.99", 50),
			},
		},
		{
			CategoryName: "Coffee Mugs",
			Products: []models.Product{
				sampleProduct("COFFEEMUG-1000", "Coffee Mug - Express", "Stoneware mug, 350ml.", "18.99", 75),
				sampleProduct("COFFEEMUG-1001", "Coffee Mug - Cherokee", "Stoneware mug, 350ml.", "18.99", 75),
			},
		},
		{
			CategoryName: "Mouse Pads",
			Products: []models.Product{
				sampleProduct("MOUSEPAD-1000", "Mouse Pad - Fairy Tale", "Non-slip rubber base.", "17.99", 120),
			},
		},
		{
			CategoryName: "Luggage Tags",
		},
	}
}

func sampleProduct(sku, name, description, price string, stock int) models.Product {
	return models.Product{
		SKU:          sku,
		Name:         name,
		Description:  description,
		UnitPrice:    decimal.RequireFromString(price),
		ImageURL:     fmt.Sprintf("assets/images/products/%s.png", sku),
		Active:       true,
		UnitsInStock: stock,
	}
}

// SeedData inserts the sample catalog unless categories already exist.
func SeedData(ctx context.Context, db *gorm.DB, log logrus.FieldLogger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		log.WithField("categories", count).Info("Catalog already seeded, skipping")
		return nil
	}

	categories := SampleCategories()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range categories {
			// Products are inserted through the has-many association.
			if err := tx.Create(&categories[i]).Error; err != nil {
				return fmt.Errorf("create category %q: %w", categories[i].CategoryName, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	products := 0
	for _, c := range categories {
		products += len(c.Products)
	}
	log.WithFields(logrus.Fields{
		"categories": len(categories),
		"products":   products,
	}).Info("Catalog seeded")
	return nil
}
