package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/quill/internal/domain"
	"github.com/totegamma/quill/internal/pipeline"
	"github.com/totegamma/quill/internal/usecase"
)

var tracer = otel.Tracer("auth")

// TargetFunc extracts the target resource identifier from a procedure's
// validated input.
type TargetFunc func(input any) (string, bool)

// AuthService backs the authentication and ownership guards.
type AuthService struct {
	sessions  usecase.SessionRepository
	users     usecase.UserRepository
	ownership usecase.OwnershipRepository
}

func NewAuthService(
	sessions usecase.SessionRepository,
	users usecase.UserRepository,
	ownership usecase.OwnershipRepository,
) *AuthService {
	return &AuthService{
		sessions:  sessions,
		users:     users,
		ownership: ownership,
	}
}

// Authenticated resolves the raw session token stashed in the request
// context to a concrete user. Requests without a valid, unexpired session
// terminate with domain.UnauthenticatedError; otherwise the requester id is
// added to the context for downstream guards and handlers.
func (s *AuthService) Authenticated() pipeline.Guard {
	return func(ctx context.Context, input any, next pipeline.Handler) (any, error) {
		ctx, span := tracer.Start(ctx, "Auth.Guard.Authenticated")
		defer span.End()

		token, _ := ctx.Value(domain.SessionTokenCtxKey).(string)
		if token == "" {
			return nil, domain.UnauthenticatedError{}
		}

		session, err := s.sessions.Resolve(ctx, token)
		if err != nil {
			span.RecordError(err)
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.UnauthenticatedError{}
			}
			return nil, errors.Wrap(err, "AuthService.Authenticated: session resolution failed")
		}

		if session.Expired(time.Now()) {
			return nil, domain.UnauthenticatedError{}
		}

		user, err := s.users.Get(ctx, session.UserID)
		if err != nil {
			span.RecordError(err)
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.UnauthenticatedError{}
			}
			return nil, errors.Wrap(err, "AuthService.Authenticated: user lookup failed")
		}

		span.SetAttributes(attribute.String("RequesterId", user.ID))
		ctx = context.WithValue(ctx, domain.RequesterIdCtxKey, user.ID)
		return next(ctx, input)
	}
}

// ResourceOwner checks the ownership relation for the pair (requester,
// target). It expects an authenticated context; target extracts the resource
// id from the validated input. Missing rows terminate with
// domain.ForbiddenError, otherwise the context is forwarded unchanged.
func (s *AuthService) ResourceOwner(target TargetFunc) pipeline.Guard {
	return func(ctx context.Context, input any, next pipeline.Handler) (any, error) {
		ctx, span := tracer.Start(ctx, "Auth.Guard.ResourceOwner")
		defer span.End()

		userID, _ := ctx.Value(domain.RequesterIdCtxKey).(string)
		if userID == "" {
			return nil, domain.UnauthenticatedError{}
		}

		postID, ok := target(input)
		if !ok || postID == "" {
			return nil, domain.ValidationError{Fields: []domain.FieldError{{
				Field:  "postId",
				Reason: "required",
			}}}
		}

		span.SetAttributes(
			attribute.String("RequesterId", userID),
			attribute.String("PostId", postID),
		)

		owned, err := s.ownership.Exists(ctx, userID, postID)
		if err != nil {
			span.RecordError(err)
			return nil, errors.Wrap(err, "AuthService.ResourceOwner: ownership lookup failed")
		}
		if !owned {
			return nil, domain.ForbiddenError{Reason: "you do not have permission to edit this post"}
		}

		return next(ctx, input)
	}
}
