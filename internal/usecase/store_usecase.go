package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

var (
	//対象の店舗が存在しない（404）
	ErrStoreNotFound = errors.New("store not found")
	//指定された所在地が存在しない（404）
	ErrLocationNotFound = errors.New("location not found")
	//指定されたカテゴリが存在しない（404）
	ErrCategoryNotFound = errors.New("category not found")
)

type LocationDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type StoreCategoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StoreDTO struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Location    LocationDTO      `json:"location"`
	Category    StoreCategoryDTO `json:"category"`
}

// location_id / category_id はnullなら「変更しない」。
// name / description は常に上書きする
type StoreUpdateRequest struct {
	Name        string  `json:"store_name"`
	Description string  `json:"description"`
	LocationID  *string `json:"location_id"`
	CategoryID  *string `json:"category_id"`
}

type StoreUsecase struct {
	users      repository.UserRepository
	stores     repository.StoreRepository
	locations  repository.LocationRepository
	categories repository.StoreCategoryRepository
	txm        repository.TransactionManager
}

// DI
func NewStoreUsecase(
	users repository.UserRepository,
	stores repository.StoreRepository,
	locations repository.LocationRepository,
	categories repository.StoreCategoryRepository,
	txm repository.TransactionManager,
) *StoreUsecase {
	return &StoreUsecase{
		users:      users,
		stores:     stores,
		locations:  locations,
		categories: categories,
		txm:        txm,
	}
}

// GetByID は店舗を読み取り用の形で返す
func (u *StoreUsecase) GetByID(ctx context.Context, storeID string) (StoreDTO, error) {
	if storeID == "" {
		return StoreDTO{}, ErrValidation
	}

	store, err := u.getStoreOrFail(ctx, storeID)
	if err != nil {
		return StoreDTO{}, err
	}
	return toStoreDTO(&store), nil
}

// Update は店舗を部分更新する。
// CUSTOMERは店舗を変更できない
func (u *StoreUsecase) Update(ctx context.Context, actorUserID int64, storeID string, req StoreUpdateRequest) (StoreDTO, error) {
	if actorUserID <= 0 {
		return StoreDTO{}, ErrUnauthorized
	}
	if storeID == "" {
		return StoreDTO{}, ErrValidation
	}

	actor, err := u.resolveActor(ctx, actorUserID)
	if err != nil {
		return StoreDTO{}, err
	}

	store, err := u.getStoreOrFail(ctx, storeID)
	if err != nil {
		return StoreDTO{}, err
	}

	before := storeAuditJSON(&store)

	//location_idが来たときだけ所在地を差し替える
	if req.LocationID != nil {
		loc, err := u.locations.FindByID(ctx, *req.LocationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return StoreDTO{}, ErrLocationNotFound
			}
			return StoreDTO{}, ErrInternal
		}
		store.LocationID = loc.ID
		store.Location = loc
	}

	//category_idも同じパターン
	if req.CategoryID != nil {
		cat, err := u.categories.FindByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return StoreDTO{}, ErrCategoryNotFound
			}
			return StoreDTO{}, ErrInternal
		}
		store.CategoryID = cat.ID
		store.Category = cat
	}

	//name / description は常に上書き
	store.Name = req.Name
	store.Description = req.Description
	store.UpdatedAt = time.Now()

	after := storeAuditJSON(&store)

	err = u.txm.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Stores().Update(ctx, store); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrStoreNotFound
			}
			return ErrInternal
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       model.AuditActionUpdateStore,
			ResourceType: model.AuditResourceStore,
			ResourceID:   store.ID,
			BeforeJSON:   before,
			AfterJSON:    after,
			CreatedAt:    time.Now(),
		}); err != nil {
			return ErrInternal
		}
		return nil
	})
	if err != nil {
		return StoreDTO{}, err
	}

	return toStoreDTO(&store), nil
}

// Delete は店舗をソフトデリートする。usernameを削除者として残す
func (u *StoreUsecase) Delete(ctx context.Context, actorUserID int64, storeID string) error {
	if actorUserID <= 0 {
		return ErrUnauthorized
	}
	if storeID == "" {
		return ErrValidation
	}

	actor, err := u.resolveActor(ctx, actorUserID)
	if err != nil {
		return err
	}

	store, err := u.getStoreOrFail(ctx, storeID)
	if err != nil {
		return err
	}

	return u.txm.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Stores().SoftDelete(ctx, store.ID, actor.Username); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrStoreNotFound
			}
			return ErrInternal
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       model.AuditActionDeleteStore,
			ResourceType: model.AuditResourceStore,
			ResourceID:   store.ID,
			BeforeJSON:   storeAuditJSON(&store),
			AfterJSON:    `{"deleted":true}`,
			CreatedAt:    time.Now(),
		}); err != nil {
			return ErrInternal
		}
		return nil
	})
}

// 店舗を1件取得。なければErrStoreNotFound
func (u *StoreUsecase) getStoreOrFail(ctx context.Context, storeID string) (model.Store, error) {
	store, err := u.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Store{}, ErrStoreNotFound
		}
		return model.Store{}, ErrInternal
	}
	return store, nil
}

// acting userを取得して権限を確認する
func (u *StoreUsecase) resolveActor(ctx context.Context, actorUserID int64) (*model.User, error) {
	actor, err := u.users.FindByID(ctx, actorUserID)
	if err != nil {
		return nil, ErrInternal
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}

	//CUSTOMERは店舗を変更できない
	if actor.Role == model.RoleCustomer {
		return nil, ErrForbidden
	}
	return actor, nil
}

func storeAuditJSON(s *model.Store) string {
	return fmt.Sprintf(
		`{"name":%q,"description":%q,"location_id":%q,"category_id":%q}`,
		s.Name, s.Description, s.LocationID, s.CategoryID,
	)
}

func toStoreDTO(s *model.Store) StoreDTO {
	return StoreDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Location: LocationDTO{
			ID:   s.Location.ID,
			Name: s.Location.Name,
			City: s.Location.City,
		},
		Category: StoreCategoryDTO{
			ID:   s.Category.ID,
			Name: s.Category.Name,
		},
	}
}
