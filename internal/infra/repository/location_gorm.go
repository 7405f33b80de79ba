package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type locationGormRepository struct {
	db *gorm.DB
}

// DI
func NewLocationGormRepository(db *gorm.DB) repo.LocationRepository {
	return &locationGormRepository{db: db}
}

// 所在地IDで1件取得
func (r *locationGormRepository) FindByID(ctx context.Context, locationID string) (model.Location, error) {
	var l model.Location
	if err := r.db.WithContext(ctx).
		Where("id = ?", locationID).
		First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Location{}, repo.ErrNotFound
		}
		return model.Location{}, err
	}
	return l, nil
}
