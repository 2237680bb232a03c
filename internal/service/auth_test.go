package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/totegamma/quill/internal/domain"
	"github.com/totegamma/quill/internal/pipeline"
	"github.com/totegamma/quill/internal/usecase"
)

type mockSessionRepo struct {
	sessions map[string]domain.Session
	calls    int
}

func (m *mockSessionRepo) Resolve(ctx context.Context, token string) (domain.Session, error) {
	m.calls++
	session, ok := m.sessions[token]
	if !ok {
		return domain.Session{}, domain.NotFoundError{Resource: "session"}
	}
	return session, nil
}

type mockUserRepo struct {
	users map[string]domain.User
}

func (m *mockUserRepo) Get(ctx context.Context, id string) (domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return user, nil
}

type mockOwnershipRepo struct {
	rows  map[[2]string]bool
	calls int
}

func (m *mockOwnershipRepo) Exists(ctx context.Context, userID, postID string) (bool, error) {
	m.calls++
	return m.rows[[2]string{userID, postID}], nil
}

func (m *mockOwnershipRepo) Grant(ctx context.Context, userID, postID string) error {
	if m.rows == nil {
		m.rows = make(map[[2]string]bool)
	}
	m.rows[[2]string{userID, postID}] = true
	return nil
}

func newTestAuthService() (*AuthService, *mockSessionRepo, *mockOwnershipRepo) {
	sessions := &mockSessionRepo{sessions: map[string]domain.Session{
		"valid-token": {
			Token:     "valid-token",
			UserID:    "user_alice",
			ExpiresAt: time.Now().Add(time.Hour),
		},
		"expired-token": {
			Token:     "expired-token",
			UserID:    "user_alice",
			ExpiresAt: time.Now().Add(-time.Hour),
		},
	}}
	users := &mockUserRepo{users: map[string]domain.User{
		"user_alice": {ID: "user_alice", Name: "alice", Email: "alice@example.com"},
	}}
	ownership := &mockOwnershipRepo{rows: map[[2]string]bool{
		{"user_alice", "post_owned"}: true,
	}}
	return NewAuthService(sessions, users, ownership), sessions, ownership
}

func passthrough(captured *context.Context) pipeline.Handler {
	return func(ctx context.Context, input any) (any, error) {
		if captured != nil {
			*captured = ctx
		}
		return "ok", nil
	}
}

func withToken(token string) context.Context {
	return context.WithValue(context.Background(), domain.SessionTokenCtxKey, token)
}

func withRequester(userID string) context.Context {
	return context.WithValue(context.Background(), domain.RequesterIdCtxKey, userID)
}

func TestAuthenticatedNoToken(t *testing.T) {
	auth, sessions, _ := newTestAuthService()

	_, err := auth.Authenticated()(context.Background(), nil, passthrough(nil))
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if sessions.calls != 0 {
		t.Fatalf("session store must not be queried without a token")
	}
}

func TestAuthenticatedUnknownToken(t *testing.T) {
	auth, _, _ := newTestAuthService()

	_, err := auth.Authenticated()(withToken("bogus"), nil, passthrough(nil))
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestAuthenticatedExpiredSession(t *testing.T) {
	auth, _, _ := newTestAuthService()

	_, err := auth.Authenticated()(withToken("expired-token"), nil, passthrough(nil))
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestAuthenticatedEnrichesContext(t *testing.T) {
	auth, _, _ := newTestAuthService()

	var handlerCtx context.Context
	result, err := auth.Authenticated()(withToken("valid-token"), nil, passthrough(&handlerCtx))
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected handler result, got %v", result)
	}

	requester, _ := handlerCtx.Value(domain.RequesterIdCtxKey).(string)
	if requester != "user_alice" {
		t.Fatalf("expected requester id in context, got %q", requester)
	}
}

func TestResourceOwnerForbidden(t *testing.T) {
	auth, _, ownership := newTestAuthService()
	target := func(input any) (string, bool) { return "post_other", true }

	handlerCalled := false
	_, err := auth.ResourceOwner(target)(withRequester("user_alice"), nil,
		func(ctx context.Context, input any) (any, error) {
			handlerCalled = true
			return nil, nil
		})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if handlerCalled {
		t.Fatalf("handler must not run after a forbidden guard")
	}
	if ownership.calls != 1 {
		t.Fatalf("expected one ownership lookup, got %d", ownership.calls)
	}
}

func TestResourceOwnerForwards(t *testing.T) {
	auth, _, _ := newTestAuthService()
	target := func(input any) (string, bool) { return "post_owned", true }

	var handlerCtx context.Context
	result, err := auth.ResourceOwner(target)(withRequester("user_alice"), nil, passthrough(&handlerCtx))
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected handler result, got %v", result)
	}

	requester, _ := handlerCtx.Value(domain.RequesterIdCtxKey).(string)
	if requester != "user_alice" {
		t.Fatalf("context must be forwarded unchanged, got %q", requester)
	}
}

func TestResourceOwnerRequiresAuthenticatedContext(t *testing.T) {
	auth, _, ownership := newTestAuthService()
	target := func(input any) (string, bool) { return "post_owned", true }

	_, err := auth.ResourceOwner(target)(context.Background(), nil, passthrough(nil))
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if ownership.calls != 0 {
		t.Fatalf("ownership store must not be queried without a requester")
	}
}

func TestResourceOwnerMissingTarget(t *testing.T) {
	auth, _, _ := newTestAuthService()
	target := func(input any) (string, bool) { return "", false }

	_, err := auth.ResourceOwner(target)(withRequester("user_alice"), nil, passthrough(nil))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

var _ usecase.SessionRepository = (*mockSessionRepo)(nil)
var _ usecase.UserRepository = (*mockUserRepo)(nil)
var _ usecase.OwnershipRepository = (*mockOwnershipRepo)(nil)
