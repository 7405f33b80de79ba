package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 店舗の永続化（保存・取得）だけを約束。
type StoreRepository interface {
	//IDから店舗を1件取得（Location/Categoryも一緒に読む）
	FindByID(ctx context.Context, storeID string) (model.Store, error)

	//店舗の更新
	Update(ctx context.Context, store model.Store) error

	//ソフトデリート。誰が消したかを残す
	SoftDelete(ctx context.Context, storeID string, deletedBy string) error
}

// 所在地マスタの取得を約束。
type LocationRepository interface {
	FindByID(ctx context.Context, locationID string) (model.Location, error)
}

// 店舗カテゴリマスタの取得を約束。
type StoreCategoryRepository interface {
	FindByID(ctx context.Context, categoryID string) (model.StoreCategory, error)
}
