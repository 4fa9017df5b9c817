package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rofoportal/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound covers both expired and logged-out sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore manages login session contexts and their draft values.
type SessionStore interface {
	Create(ctx context.Context, username, role string) (*model.Session, error)
	Get(ctx context.Context, id string) (*model.Session, error)
	SaveDraft(ctx context.Context, id string, draft *model.Draft) error
	ClearDraft(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type redisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string { return "session:" + id }

func (s *redisSessionStore) Create(ctx context.Context, username, role string) (*model.Session, error) {
	sess := &model.Session{
		ID:        uuid.New().String(),
		Username:  username,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.set(ctx, sess, s.ttl); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &sess, nil
}

func (s *redisSessionStore) SaveDraft(ctx context.Context, id string, draft *model.Draft) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.Draft = draft
	// KeepTTL: saving a draft must not extend the login session.
	return s.set(ctx, sess, redis.KeepTTL)
}

func (s *redisSessionStore) ClearDraft(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.Draft = nil
	return s.set(ctx, sess, redis.KeepTTL)
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}

func (s *redisSessionStore) set(ctx context.Context, sess *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, sessionKey(sess.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}
