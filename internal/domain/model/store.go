package model

import (
	"time"

	"gorm.io/gorm"
)

// 店舗
type Store struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	//所在地（共有参照。店舗が所有するわけではない）
	LocationID string   `gorm:"type:uuid;not null;index" json:"location_id"`
	Location   Location `gorm:"foreignKey:LocationID" json:"location"`

	//店舗カテゴリ（共有参照）
	CategoryID string        `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   StoreCategory `gorm:"foreignKey:CategoryID" json:"category"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	//ソフトデリート
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	//誰が削除したか（username）
	DeletedBy string `gorm:"type:varchar(255)" json:"-"`
}
