package rest

import (
	"context"

	"github.com/totegamma/quill/internal/pipeline"
	"github.com/totegamma/quill/internal/service"
	"github.com/totegamma/quill/internal/usecase"
	"github.com/totegamma/quill/internal/validate"
)

// NewRegistry binds every operation to its guard chain and terminal handler.
// The bindings are fixed at startup and never mutated.
func NewRegistry(posts *usecase.PostUsecase, auth *service.AuthService) *pipeline.Registry {
	return pipeline.NewRegistry(map[string]*pipeline.Procedure{
		"post.list": pipeline.NewProcedure(
			nil,
			func(ctx context.Context, _ any) (any, error) {
				return posts.List(ctx)
			},
		),
		// TODO make post.create require Authenticated and grant an ownership
		// row to the creator; until then new posts stay un-editable (see
		// DESIGN.md).
		"post.create": pipeline.NewProcedure(
			decodeCreatePost,
			func(ctx context.Context, input any) (any, error) {
				return posts.Create(ctx, input.(usecase.CreatePostInput))
			},
		),
		"post.edit": pipeline.NewProcedure(
			decodeEditPost,
			func(ctx context.Context, input any) (any, error) {
				return posts.Edit(ctx, input.(usecase.EditPostInput))
			},
			auth.Authenticated(),
			auth.ResourceOwner(editPostTarget),
		),
	})
}

func decodeCreatePost(raw []byte) (any, error) {
	return validate.Decode[usecase.CreatePostInput](raw, false)
}

func decodeEditPost(raw []byte) (any, error) {
	return validate.Decode[usecase.EditPostInput](raw, true)
}

func editPostTarget(input any) (string, bool) {
	in, ok := input.(usecase.EditPostInput)
	if !ok || in.PostID == nil {
		return "", false
	}
	return *in.PostID, true
}
