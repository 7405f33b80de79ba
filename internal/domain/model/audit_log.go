package model

import "time"

// 店舗の更新・削除など。
type AuditAction string

const (
	//店舗情報を更新した操作。
	AuditActionUpdateStore AuditAction = "UPDATE_STORE"
	//店舗を削除した操作。
	AuditActionDeleteStore AuditAction = "DELETE_STORE"
)

// 何に対する操作か
type AuditResourceType string

const (
	//店舗に対する操作。
	AuditResourceStore AuditResourceType = "store"

	//住所に対する操作。
	AuditResourceAddress AuditResourceType = "address"

	//ユーザーに対する操作。
	AuditResourceUser AuditResourceType = "user"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザーのID。
	ActorUserID int64 `gorm:"not null;index" json:"actor_user_id"`

	//操作の種類（UPDATE_STORE / DELETE_STORE など）。
	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	//対象の種類（store / address / user）。
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	//対象のID。
	ResourceID string `gorm:"type:varchar(64);not null;index" json:"resource_id"`

	//変更前をJSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`

	//変更後をJSON文字列で保存する。
	AfterJSON string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
