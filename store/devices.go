package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const deviceTokenPrefix = "device:token:"

type DeviceTokenStore interface {
	Save(ctx context.Context, userID, token string) error
	Get(ctx context.Context, userID string) (string, error)
}

type RedisDeviceTokenStore struct {
	client *redis.Client
}

func NewRedisDeviceTokenStore(client *redis.Client) *RedisDeviceTokenStore {
	return &RedisDeviceTokenStore{
		client: client,
	}
}

func (s *RedisDeviceTokenStore) IsReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	return s.client.Ping(ctx).Err()
}

func (s *RedisDeviceTokenStore) Name() string {
	return "DeviceTokenStore[redis]"
}

// Save replaces the user's token; tokens do not expire.
func (s *RedisDeviceTokenStore) Save(ctx context.Context, userID, token string) error {
	return s.client.Set(ctx, deviceTokenPrefix+userID, token, 0).Err()
}

func (s *RedisDeviceTokenStore) Get(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, deviceTokenPrefix+userID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisDeviceTokenStore) Shutdown(ctx context.Context) error {
	return s.client.Close()
}
