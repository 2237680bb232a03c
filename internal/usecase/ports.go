package usecase

import (
	"context"

	"github.com/totegamma/quill/internal/domain"
)

// PostRepository defines storage operations for posts.
type PostRepository interface {
	List(ctx context.Context) ([]domain.Post, error)
	Create(ctx context.Context, title, content string) (domain.Post, error)
	Update(ctx context.Context, id string, title, content *string) (domain.Post, error)
}

// OwnershipRepository defines lookup and maintenance of the user/post
// ownership relation.
type OwnershipRepository interface {
	Exists(ctx context.Context, userID, postID string) (bool, error)
	Grant(ctx context.Context, userID, postID string) error
}

// SessionRepository resolves opaque session tokens issued by the external
// identity provider. Missing sessions resolve to domain.ErrNotFound.
type SessionRepository interface {
	Resolve(ctx context.Context, token string) (domain.Session, error)
}

// UserRepository defines lookup for users.
type UserRepository interface {
	Get(ctx context.Context, id string) (domain.User, error)
}
