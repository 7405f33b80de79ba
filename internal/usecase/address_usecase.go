package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/google/uuid"
)

var (
	//acting userが存在しない（404）
	ErrUserNotFound = errors.New("user not found")
	//対象の住所が存在しない（404）
	ErrAddressNotFound = errors.New("address not found")
	//住所数の上限超過（400）
	ErrExceedMaxAddress = errors.New("exceed maximum address")
)

// 1ユーザーが持てる住所数の既定値
const DefaultMaxAddressCount = 5

type AddressDTO struct {
	ID           string  `json:"id"`
	UserID       int64   `json:"user_id"`
	City         string  `json:"city"`
	District     string  `json:"district"`
	StreetName   string  `json:"street_name"`
	StreetNumber string  `json:"street_number"`
	Detail       string  `json:"detail"`
	IsDefault    bool    `json:"is_default"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    *string `json:"updated_at,omitempty"`
}

type AddressCreateRequest struct {
	City         string `json:"city"`
	District     string `json:"district"`
	StreetName   string `json:"street_name"`
	StreetNumber string `json:"street_number"`
	Detail       string `json:"detail"`
	IsDefault    bool   `json:"is_default"`
}

// 更新は可変フィールドの全置換（nullはそのままという意味ではない）
type AddressUpdateRequest struct {
	City         string `json:"city"`
	District     string `json:"district"`
	StreetName   string `json:"street_name"`
	StreetNumber string `json:"street_number"`
	Detail       string `json:"detail"`
	IsDefault    bool   `json:"is_default"`
}

type AddressUsecase struct {
	users        repository.UserRepository
	addresses    repository.AddressRepository
	txm          repository.TransactionManager
	maxAddresses int64
}

// DI
func NewAddressUsecase(
	users repository.UserRepository,
	addresses repository.AddressRepository,
	txm repository.TransactionManager,
	maxAddresses int64,
) *AddressUsecase {
	if maxAddresses <= 0 {
		maxAddresses = DefaultMaxAddressCount
	}
	return &AddressUsecase{
		users:        users,
		addresses:    addresses,
		txm:          txm,
		maxAddresses: maxAddresses,
	}
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]AddressDTO, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]AddressDTO, 0, len(list))
	for i := range list {
		out = append(out, toAddressDTO(&list[i]))
	}
	return out, nil
}

// Create は住所を新規作成する。
// 上限チェック → デフォルト降格 → 作成を1トランザクションで行う
func (u *AddressUsecase) Create(ctx context.Context, userID int64, req AddressCreateRequest) error {
	if userID <= 0 {
		return ErrUnauthorized
	}

	//入力チェック
	if req.City == "" || req.District == "" || req.StreetName == "" || req.StreetNumber == "" {
		return ErrValidation
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return ErrInternal
	}
	if user == nil {
		return ErrUserNotFound
	}

	now := time.Now()
	a := model.Address{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		City:         req.City,
		District:     req.District,
		StreetName:   req.StreetName,
		StreetNumber: req.StreetNumber,
		Detail:       req.Detail,
		IsDefault:    req.IsDefault,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return u.txm.WithinTx(ctx, func(r repository.TxRepos) error {
		//同一ユーザーの同時操作を直列化（defaultが2件にならないように）
		if err := r.Addresses().LockUser(ctx, user.ID); err != nil {
			return ErrInternal
		}

		//上限チェック（削除済みは数えない）
		count, err := r.Addresses().CountByUserID(ctx, user.ID)
		if err != nil {
			return ErrInternal
		}
		if count >= u.maxAddresses {
			return ErrExceedMaxAddress
		}

		//デフォルト希望なら既存のデフォルトを降格させる
		if req.IsDefault {
			if err := demoteDefault(ctx, r.Addresses(), user.ID, ""); err != nil {
				return err
			}
		}

		if _, err := r.Addresses().Create(ctx, a); err != nil {
			return ErrInternal
		}
		return nil
	})
}

// Update は住所を全置換で更新する。本人のものだけ
func (u *AddressUsecase) Update(ctx context.Context, userID int64, addressID string, req AddressUpdateRequest) error {
	if userID <= 0 {
		return ErrUnauthorized
	}
	if addressID == "" {
		return ErrValidation
	}
	if req.City == "" || req.District == "" || req.StreetName == "" || req.StreetNumber == "" {
		return ErrValidation
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return ErrInternal
	}
	if user == nil {
		return ErrUserNotFound
	}

	return u.txm.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Addresses().LockUser(ctx, user.ID); err != nil {
			return ErrInternal
		}

		addr, err := r.Addresses().FindByID(ctx, addressID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrAddressNotFound
			}
			return ErrInternal
		}

		//所有チェックはIDの比較で行う（オブジェクト同一性には依存しない）
		if addr.UserID != user.ID {
			return ErrForbidden
		}

		//デフォルト希望なら別の住所のデフォルトを降格させる
		if req.IsDefault {
			if err := demoteDefault(ctx, r.Addresses(), user.ID, addr.ID); err != nil {
				return err
			}
		}

		addr.City = req.City
		addr.District = req.District
		addr.StreetName = req.StreetName
		addr.StreetNumber = req.StreetNumber
		addr.Detail = req.Detail
		addr.IsDefault = req.IsDefault
		addr.UpdatedAt = time.Now()

		if err := r.Addresses().Update(ctx, addr); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrAddressNotFound
			}
			return ErrInternal
		}
		return nil
	})
}

// Delete は住所をソフトデリートする。誰が消したかを残す
func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID string) error {
	if userID <= 0 {
		return ErrUnauthorized
	}
	if addressID == "" {
		return ErrValidation
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return ErrInternal
	}
	if user == nil {
		return ErrUserNotFound
	}

	addr, err := u.addresses.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAddressNotFound
		}
		return ErrInternal
	}

	if addr.UserID != user.ID {
		return ErrForbidden
	}

	if err := u.addresses.SoftDelete(ctx, addr.ID, strconv.FormatInt(user.ID, 10)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAddressNotFound
		}
		return ErrInternal
	}
	return nil
}

// 既存のデフォルト住所を降格させる。excludeID自身は対象外
func demoteDefault(ctx context.Context, addresses repository.AddressRepository, userID int64, excludeID string) error {
	def, err := addresses.FindDefaultByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			//デフォルトがなければ何もしない
			return nil
		}
		return ErrInternal
	}

	if def.ID == excludeID {
		return nil
	}

	if err := addresses.UpdateDefault(ctx, def.ID, false); err != nil {
		return ErrInternal
	}
	return nil
}

func toAddressDTO(a *model.Address) AddressDTO {
	dto := AddressDTO{
		ID:           a.ID,
		UserID:       a.UserID,
		City:         a.City,
		District:     a.District,
		StreetName:   a.StreetName,
		StreetNumber: a.StreetNumber,
		Detail:       a.Detail,
		IsDefault:    a.IsDefault,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
	t := a.UpdatedAt.Format(time.RFC3339)
	dto.UpdatedAt = &t
	return dto
}
