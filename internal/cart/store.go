package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
)

// State is what survives across requests for one session: the ledger
// snapshot plus the applied promo code. The fields round-trip together or
// not at all.
type State struct {
	Items      []LineItem `json:"items"`
	ItemsCount int        `json:"items_count"`
	Subtotal   int        `json:"subtotal"`
	PromoCode  string     `json:"promo_code,omitempty"`
}

// StateStore persists per-session cart state.
type StateStore interface {
	Load(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, sessionID string, state *State) error
	Drop(ctx context.Context, sessionID string) error
}

type cartKV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

type redisStore struct {
	kv  cartKV
	ttl time.Duration
}

// NewRedisStore builds a state store over the shared Redis client. The TTL
// bounds how long an idle cart survives.
func NewRedisStore(kv cartKV, ttl time.Duration) (StateStore, error) {
	if kv == nil {
		return nil, errors.New("redis client required")
	}
	return &redisStore{kv: kv, ttl: ttl}, nil
}

// Load returns the persisted state, or a fresh empty state when the session
// has no cart yet.
func (s *redisStore) Load(ctx context.Context, sessionID string) (*State, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return &State{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart state")
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart state")
	}
	return &state, nil
}

// Save persists the full state as one value so the snapshot and promo code
// never tear apart.
func (s *redisStore) Save(ctx context.Context, sessionID string, state *State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart state")
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart state")
	}
	return nil
}

// Drop deletes the session's cart entirely.
func (s *redisStore) Drop(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "drop cart state")
	}
	return nil
}
