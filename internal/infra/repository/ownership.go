package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/quill/internal/infra/database/models"
)

type OwnershipRepository struct {
	db *gorm.DB
}

func NewOwnershipRepository(db *gorm.DB) *OwnershipRepository {
	return &OwnershipRepository{db: db}
}

func (r *OwnershipRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Ownership.Repository.Exists")
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserPost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		span.RecordError(err)
		return false, errors.Wrap(err, "OwnershipRepository.Exists")
	}

	return count > 0, nil
}

func (r *OwnershipRepository) Grant(ctx context.Context, userID, postID string) error {
	ctx, span := tracer.Start(ctx, "Ownership.Repository.Grant")
	defer span.End()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserPost{UserID: userID, PostID: postID}).Error
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "OwnershipRepository.Grant")
	}
	return nil
}
