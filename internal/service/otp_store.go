package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/models"

	"github.com/redis/go-redis/v9"
)

// OTPStore keeps pending challenges until they are verified or expire.
type OTPStore interface {
	Save(ctx context.Context, ch models.OTPChallenge) error
	Get(ctx context.Context, token string) (models.OTPChallenge, error)
	Delete(ctx context.Context, token string) error
}

const otpKeyPrefix = "otp:challenge:"

type RedisOTPStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client, now: time.Now}
}

func (s *RedisOTPStore) Save(ctx context.Context, ch models.OTPChallenge) error {
	ttl := ch.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return apperrors.ErrExpired
	}
	body, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("failed to encode otp challenge: %w", err)
	}
	if err := s.client.Set(ctx, otpKeyPrefix+ch.Token, body, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp challenge: %w", err)
	}
	return nil
}

func (s *RedisOTPStore) Get(ctx context.Context, token string) (models.OTPChallenge, error) {
	var ch models.OTPChallenge
	body, err := s.client.Get(ctx, otpKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return ch, apperrors.ErrNotFound
	}
	if err != nil {
		return ch, fmt.Errorf("failed to load otp challenge: %w", err)
	}
	if err := json.Unmarshal(body, &ch); err != nil {
		return ch, fmt.Errorf("failed to decode otp challenge: %w", err)
	}
	return ch, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, otpKeyPrefix+token).Err()
}

// MemoryOTPStore serves single-process deployments and tests.
type MemoryOTPStore struct {
	mu         sync.Mutex
	challenges map[string]models.OTPChallenge
	now        func() time.Time
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{challenges: make(map[string]models.OTPChallenge), now: time.Now}
}

func (s *MemoryOTPStore) Save(_ context.Context, ch models.OTPChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.challenges[ch.Token] = ch
	return nil
}

func (s *MemoryOTPStore) Get(_ context.Context, token string) (models.OTPChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.challenges[token]
	if !ok {
		return ch, apperrors.ErrNotFound
	}
	return ch, nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, token)
	return nil
}

func (s *MemoryOTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}

// sweep drops challenges that expired long enough ago that nobody will ask
// about them. Caller holds mu.
func (s *MemoryOTPStore) sweep() {
	cutoff := s.now().Add(-time.Hour)
	for token, ch := range s.challenges {
		if ch.ExpiresAt.Before(cutoff) {
			delete(s.challenges, token)
		}
	}
}
