package repository

import (
	"Pulse/internal/model"
	"context"

	"gorm.io/gorm"
)

type SocialAccountRepo interface {
	ListConnected(ctx context.Context, creatorID uint64) ([]*model.SocialAccount, error)
}

type socialAccountRepoImpl struct {
	db *gorm.DB
}

func NewSocialAccountRepo(db *gorm.DB) SocialAccountRepo {
	return &socialAccountRepoImpl{db: db}
}

// ListConnected 已连接的账号，社交平台与变现平台都在内
func (s *socialAccountRepoImpl) ListConnected(ctx context.Context, creatorID uint64) ([]*model.SocialAccount, error) {
	accounts := make([]*model.SocialAccount, 0)
	err := s.db.WithContext(ctx).
		Where("creator_id = ? AND connected = ?", creatorID, true).
		Order("platform").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
