package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type storeCategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewStoreCategoryGormRepository(db *gorm.DB) repo.StoreCategoryRepository {
	return &storeCategoryGormRepository{db: db}
}

// カテゴリIDで1件取得
func (r *storeCategoryGormRepository) FindByID(ctx context.Context, categoryID string) (model.StoreCategory, error) {
	var c model.StoreCategory
	if err := r.db.WithContext(ctx).
		Where("id = ?", categoryID).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.StoreCategory{}, repo.ErrNotFound
		}
		return model.StoreCategory{}, err
	}
	return c, nil
}
