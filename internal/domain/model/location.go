package model

import "time"

// 店舗の所在地マスタ
type Location struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	City string `gorm:"type:varchar(255);not null" json:"city"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
