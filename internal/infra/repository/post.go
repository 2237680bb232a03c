package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/totegamma/quill/internal/domain"
	"github.com/totegamma/quill/internal/infra/database/models"
)

var tracer = otel.Tracer("repository")

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	ctx, span := tracer.Start(ctx, "Post.Repository.List")
	defer span.End()

	var rows []models.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "PostRepository.List")
	}

	posts := make([]domain.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, toDomainPost(row))
	}
	return posts, nil
}

func (r *PostRepository) Create(ctx context.Context, title, content string) (domain.Post, error) {
	ctx, span := tracer.Start(ctx, "Post.Repository.Create")
	defer span.End()

	row := models.Post{
		ID:        domain.NewID("post"),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().Unix(),
	}

	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		span.RecordError(result.Error)
		return domain.Post{}, errors.Wrap(result.Error, "PostRepository.Create")
	}
	if result.RowsAffected == 0 {
		err := domain.InternalError{Message: "failed to create post"}
		span.RecordError(err)
		return domain.Post{}, err
	}

	return toDomainPost(row), nil
}

func (r *PostRepository) Update(ctx context.Context, id string, title, content *string) (domain.Post, error) {
	ctx, span := tracer.Start(ctx, "Post.Repository.Update")
	defer span.End()

	updates := map[string]any{
		"updated_at": time.Now().Unix(),
	}
	if title != nil {
		updates["title"] = *title
	}
	if content != nil {
		updates["content"] = *content
	}

	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		span.RecordError(result.Error)
		return domain.Post{}, errors.Wrap(result.Error, "PostRepository.Update")
	}
	if result.RowsAffected == 0 {
		return domain.Post{}, domain.NotFoundError{Resource: "post"}
	}

	var row models.Post
	err := r.db.WithContext(ctx).
		Take(&row, "id = ?", id).Error
	if err != nil {
		span.RecordError(err)
		return domain.Post{}, errors.Wrap(err, "PostRepository.Update: reload")
	}

	return toDomainPost(row), nil
}

// toDomainPost recomputes the reading-length estimate from the current body;
// the estimate is never persisted.
func toDomainPost(row models.Post) domain.Post {
	return domain.Post{
		ID:                     row.ID,
		Title:                  row.Title,
		Content:                row.Content,
		Views:                  row.Views,
		EstimatedReadingLength: domain.EstimateReadingLength(row.Content),
		CreatedAt:              row.CreatedAt,
		UpdatedAt:              row.UpdatedAt,
	}
}
