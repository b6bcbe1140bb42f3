package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pricebot/internal/application"
	"pricebot/internal/domain"
	"pricebot/internal/infrastructure/logx"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ application.StateStore = (*Store)(nil)

type Store struct {
	Client *redis.Client
	Key    string
}

func New(client *redis.Client, key string) *Store {
	return &Store{Client: client, Key: key}
}

type record struct {
	MessageID string    `json:"message_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Store) Load(ctx context.Context) (domain.State, error) {
	raw, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.State{}, nil
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("redis get %s: %w", s.Key, err)
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.State{}, fmt.Errorf("redis decode %s: %w", s.Key, err)
	}
	if rec.MessageID == "" {
		return domain.State{}, nil
	}
	return domain.State{Live: &domain.LiveMessage{ID: rec.MessageID, CreatedAt: rec.CreatedAt.UTC()}}, nil
}

// Save stores the live message, or removes the key when there is none.
func (s *Store) Save(ctx context.Context, st domain.State) error {
	if st.Live == nil {
		if err := s.Client.Del(ctx, s.Key).Err(); err != nil {
			return fmt.Errorf("redis del %s: %w", s.Key, err)
		}
		logx.WithFields(ctx).Debug("redis_state_cleared", zap.String("key", s.Key))
		return nil
	}
	raw, err := json.Marshal(record{MessageID: st.Live.ID, CreatedAt: st.Live.CreatedAt.UTC()})
	if err != nil {
		return err
	}
	if err := s.Client.Set(ctx, s.Key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.Key, err)
	}
	logx.WithFields(ctx).Debug("redis_state_saved", zap.String("key", s.Key), zap.String("message_id", st.Live.ID))
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
