package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type storeGormRepository struct {
	db *gorm.DB
}

// DI
func NewStoreGormRepository(db *gorm.DB) repo.StoreRepository {
	return &storeGormRepository{db: db}
}

// 店舗IDで1件取得。Location/Categoryも一緒に読む
func (r *storeGormRepository) FindByID(ctx context.Context, storeID string) (model.Store, error) {
	var s model.Store
	if err := r.db.WithContext(ctx).
		Preload("Location").
		Preload("Category").
		Where("id = ?", storeID).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Store{}, repo.ErrNotFound
		}
		return model.Store{}, err
	}
	return s, nil
}

// 店舗を更新
func (r *storeGormRepository) Update(ctx context.Context, store model.Store) error {
	result := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ?", store.ID).
		Select(
			"name",
			"description",
			"location_id",
			"category_id",
			"updated_at",
		).
		Updates(store)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ソフトデリート。削除済みへの再実行は0件更新になりErrNotFound
func (r *storeGormRepository) SoftDelete(ctx context.Context, storeID string, deletedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ?", storeID).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
