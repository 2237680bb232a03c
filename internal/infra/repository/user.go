package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/totegamma/quill/internal/domain"
	"github.com/totegamma/quill/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Get(ctx context.Context, id string) (domain.User, error) {
	ctx, span := tracer.Start(ctx, "User.Repository.Get")
	defer span.End()

	var row models.User
	err := r.db.WithContext(ctx).
		Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		span.RecordError(err)
		return domain.User{}, errors.Wrap(err, "UserRepository.Get")
	}

	return domain.User{
		ID:    row.ID,
		Name:  row.Name,
		Age:   row.Age,
		Email: row.Email,
	}, nil
}
