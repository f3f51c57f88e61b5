package repository

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CreatorRepo interface {
	GetCreator(ctx context.Context, id uint64) (*model.Creator, error)
	ListActiveCreatorIDs(ctx context.Context) ([]uint64, error)
}

type creatorRepoImpl struct {
	db *gorm.DB
}

func NewCreatorRepo(db *gorm.DB) CreatorRepo {
	return &creatorRepoImpl{db: db}
}

// GetCreator 不存在时返回 nil, nil
func (s *creatorRepoImpl) GetCreator(ctx context.Context, id uint64) (*model.Creator, error) {
	var creator model.Creator
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&creator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creator, nil
}

func (s *creatorRepoImpl) ListActiveCreatorIDs(ctx context.Context) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := s.db.WithContext(ctx).
		Model(&model.Creator{}).
		Where("status = ?", consts.CreatorStatusNormal).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
