package model

import (
	"time"

	"gorm.io/gorm"
)

// 配送先住所
type Address struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID int64  `gorm:"not null;index" json:"user_id"`

	//市区町村
	City string `gorm:"type:varchar(255);not null" json:"city"`

	//区・郡
	District string `gorm:"type:varchar(255);not null" json:"district"`

	//道路名
	StreetName string `gorm:"type:varchar(255);not null" json:"street_name"`

	//番地
	StreetNumber string `gorm:"type:varchar(50);not null" json:"street_number"`

	//建物名・部屋番号など
	Detail string `gorm:"type:varchar(255)" json:"detail"`

	//このユーザーのデフォルト住所か（ユーザーごとに最大1件）
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	//ソフトデリート。削除済みは全クエリから自動で除外される
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	//誰が削除したか（ユーザーIDの文字列）
	DeletedBy string `gorm:"type:varchar(255)" json:"-"`
}
