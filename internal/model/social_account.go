package model

import "time"

// SocialAccount 创作者已连接的外部账号（社交平台或变现平台）
type SocialAccount struct {
	ID          uint64    `gorm:"primaryKey"`
	CreatorID   uint64    `gorm:"not null;index:idx_creator_platform,unique"`
	Platform    string    `gorm:"type:varchar(32);not null;index:idx_creator_platform,unique"`
	Kind        string    `gorm:"type:varchar(16);not null;default:'social'"` // social | monetization
	ExternalID  string    `gorm:"type:varchar(128);not null;default:''"`
	Followers   int64     `gorm:"not null;default:0"`
	Connected   bool      `gorm:"not null;default:true"`
	ConnectedAt time.Time `gorm:"not null"`
	UpdatedAt   time.Time
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
