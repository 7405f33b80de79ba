package repository

import (
	"app/internal/domain/model"
	"context"
)

// 住所(Address)を保存・取得する窓口。
// 削除済み（ソフトデリート）の行はどのメソッドからも見えない。
type AddressRepository interface {
	//Create は住所を新規作成する。
	//作成後はaddress（IDなどが埋まったもの）を返す
	Create(ctx context.Context, address model.Address) (model.Address, error)

	//ユーザーが持つ住所一覧を返す（デフォルトが先頭）
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)

	//住所IDから住所を1件取得
	FindByID(ctx context.Context, addressID string) (model.Address, error)

	//ユーザーが持つ住所の件数（削除済みは数えない）
	CountByUserID(ctx context.Context, userID int64) (int64, error)

	//ユーザーの現在のデフォルト住所を返す。なければ ErrNotFound
	FindDefaultByUserID(ctx context.Context, userID int64) (model.Address, error)

	//デフォルトフラグだけを付け替える
	UpdateDefault(ctx context.Context, addressID string, isDefault bool) error

	//住所の更新（可変フィールドの全置換）。
	Update(ctx context.Context, address model.Address) error

	//ソフトデリート。誰が消したかを残す
	SoftDelete(ctx context.Context, addressID string, deletedBy string) error

	//同一ユーザーの住所変更を直列化するためのロック。
	//トランザクション内でのみ意味を持つ
	LockUser(ctx context.Context, userID int64) error
}
