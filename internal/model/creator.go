package model

import "time"

type Creator struct {
	ID          uint64    `gorm:"primaryKey"`
	Handle      string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	DisplayName string    `gorm:"type:varchar(128);not null;default:''"`
	Status      int8      `gorm:"not null;default:1"` // 1-正常, 2-停用
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Creator) TableName() string {
	return "creators"
}
