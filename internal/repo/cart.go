package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/basic_shop/internal/models"
)

// AddToCart increments the cart row of productID or creates one, in a single
// transaction. The product row is locked FOR UPDATE so concurrent adds of the
// same product serialize and cannot both insert. SQLite drops the locking
// clause; its single-writer lock gives the same ordering.
// It returns gorm.ErrRecordNotFound when the product is absent.
func (r *GormRepo) AddToCart(ctx context.Context, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&product, productID).Error; err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("product_id = ?", productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("product_id = ?", productID).Order("id ASC").First(&item).Error
		}

		item = models.CartItem{ProductID: productID, Quantity: quantity}
		return tx.Omit(clause.Associations).Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CartItems returns every cart row with its product loaded.
func (r *GormRepo) CartItems(ctx context.Context) ([]models.CartItem, error) {
	items := []models.CartItem{}
	if err := r.DB.WithContext(ctx).Preload("Product").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveCartItem deletes the cart row and the product it references in one
// transaction, and returns the removed row.
func (r *GormRepo) RemoveCartItem(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.CartItem{}, item.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, item.ProductID).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
