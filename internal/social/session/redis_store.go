package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as JSON values with a TTL matching their expiry,
// so Redis does the housekeeping.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "hellosocial:session:",
	}
}

// NewRedisClient connects and pings within two seconds.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (r *RedisStore) key(tokenHash string) string {
	return r.prefix + tokenHash
}

type redisSession struct {
	IdentityID string    `json:"identity_id"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (r *RedisStore) Create(ctx context.Context, s domain.Session) error {
	if s.TokenHash == "" || s.IdentityID == "" {
		return errors.New("session: missing token hash or identity id")
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session: expires_at must be in the future")
	}

	data, err := json.Marshal(redisSession{
		IdentityID: s.IdentityID,
		CreatedAt:  s.CreatedAt,
		ExpiresAt:  s.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(s.TokenHash), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, tokenHash string) (domain.Session, error) {
	val, err := r.client.Get(ctx, r.key(tokenHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}

	var rs redisSession
	if err := json.Unmarshal(val, &rs); err != nil {
		return domain.Session{}, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	return domain.Session{
		TokenHash:  tokenHash,
		IdentityID: rs.IdentityID,
		CreatedAt:  rs.CreatedAt,
		ExpiresAt:  rs.ExpiresAt,
	}, nil
}

func (r *RedisStore) Delete(ctx context.Context, tokenHash string) error {
	return r.client.Del(ctx, r.key(tokenHash)).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
