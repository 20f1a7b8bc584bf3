package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fundready/internal/auth/models"
	"fundready/pkg/platform/sentinel"
)

const (
	otpChallengeKeyPrefix = "otp:challenge:"
	otpAttemptsKeyPrefix  = "otp:attempts:"
)

// RedisOTPStore keeps OTP challenges in Redis with a real TTL, so codes die
// on schedule across restarts and replicas.
type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func (s *RedisOTPStore) Put(ctx context.Context, challenge *models.Challenge, ttl time.Duration) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("marshal otp challenge: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, otpChallengeKeyPrefix+challenge.Phone, payload, ttl)
	pipe.Del(ctx, otpAttemptsKeyPrefix+challenge.Phone)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store otp challenge: %w", err)
	}
	return nil
}

func (s *RedisOTPStore) Get(ctx context.Context, phone string) (*models.Challenge, error) {
	payload, err := s.client.Get(ctx, otpChallengeKeyPrefix+phone).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load otp challenge: %w", err)
	}

	var challenge models.Challenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return nil, fmt.Errorf("unmarshal otp challenge: %w", err)
	}

	attempts, err := s.client.Get(ctx, otpAttemptsKeyPrefix+phone).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load otp attempts: %w", err)
	}
	challenge.Attempts = attempts
	return &challenge, nil
}

// RecordAttempt counts one failed guess atomically via INCR. The attempts key
// expires with the challenge.
func (s *RedisOTPStore) RecordAttempt(ctx context.Context, phone string) (int, error) {
	key := otpAttemptsKeyPrefix + phone
	attempts, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("record otp attempt: %w", err)
	}
	if attempts == 1 {
		ttl, err := s.client.TTL(ctx, otpChallengeKeyPrefix+phone).Result()
		if err == nil && ttl > 0 {
			s.client.Expire(ctx, key, ttl)
		}
	}
	return int(attempts), nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, otpChallengeKeyPrefix+phone, otpAttemptsKeyPrefix+phone).Err(); err != nil {
		return fmt.Errorf("delete otp challenge: %w", err)
	}
	return nil
}
