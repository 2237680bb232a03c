package usecase

import (
	"context"

	"github.com/totegamma/quill/internal/domain"
)

// CreatePostInput is the validated input for creating a post. Title and
// content must be present; empty strings are accepted since no minimum
// length constraint exists.
type CreatePostInput struct {
	Title   *string `json:"title" validate:"required"`
	Content *string `json:"content" validate:"required"`
}

// EditPostInput is the validated input for editing a post. PostID selects
// the target; absent title/content leave the stored value untouched.
type EditPostInput struct {
	PostID  *string `json:"postId" validate:"required"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type PostUsecase struct {
	repo PostRepository
}

func NewPostUsecase(repo PostRepository) *PostUsecase {
	return &PostUsecase{repo: repo}
}

// List returns all posts, newest first.
func (uc *PostUsecase) List(ctx context.Context) ([]domain.Post, error) {
	return uc.repo.List(ctx)
}

// Create persists a new post and returns it with its server-assigned fields.
// Repeated calls with identical input create distinct posts.
func (uc *PostUsecase) Create(ctx context.Context, input CreatePostInput) (domain.Post, error) {
	return uc.repo.Create(ctx, *input.Title, *input.Content)
}

// Edit applies the provided fields to the target post and refreshes its
// update timestamp. Reachable only behind the resource-owner guard.
func (uc *PostUsecase) Edit(ctx context.Context, input EditPostInput) (domain.Post, error) {
	return uc.repo.Update(ctx, *input.PostID, input.Title, input.Content)
}
