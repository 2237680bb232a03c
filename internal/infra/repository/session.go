package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/totegamma/quill/internal/domain"
)

const sessionKeyPrefix = "session:"

// sessionRecord is the wire shape the identity provider writes to redis.
type sessionRecord struct {
	UserID    string `json:"userId"`
	ExpiresAt int64  `json:"expiresAt"`
}

// SessionRepository reads sessions issued by the external identity provider.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func (r *SessionRepository) Resolve(ctx context.Context, token string) (domain.Session, error) {
	ctx, span := tracer.Start(ctx, "Session.Repository.Resolve")
	defer span.End()

	value, err := r.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return domain.Session{}, domain.NotFoundError{Resource: "session"}
	}
	if err != nil {
		span.RecordError(err)
		return domain.Session{}, errors.Wrap(err, "SessionRepository.Resolve")
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		span.RecordError(err)
		return domain.Session{}, errors.Wrap(err, "SessionRepository.Resolve: corrupt session record")
	}

	return domain.Session{
		Token:     token,
		UserID:    record.UserID,
		ExpiresAt: time.Unix(record.ExpiresAt, 0),
	}, nil
}
