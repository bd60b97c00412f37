package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bytehacks/bumblebee_service/internal/client"
)

// profileKey is the singleton profile's Redis key. There is one child per
// deployment; no multi-user keying.
const profileKey = "child_profile"

const profileMaxRetries = 3

// ChildProfile is the free-text personalization profile.
type ChildProfile struct {
	Info        string     `json:"info"`
	LastUpdated *time.Time `json:"last_updated"`
}

// ProfileRepository persists the singleton child profile.
type ProfileRepository interface {
	Get(ctx context.Context) (ChildProfile, error)
	Append(ctx context.Context, newInfo string, now time.Time) (ChildProfile, error)
}

// MergeProfileInfo concatenates newly extracted facts onto the existing
// free-text profile, trimming the result. No deduplication is attempted;
// the reasoning model is responsible for returning only novel facts.
func MergeProfileInfo(existing, newInfo string) string {
	return strings.TrimSpace(existing + " " + newInfo)
}

type RedisProfileRepository struct {
	redis *client.RedisClient
}

func NewRedisProfileRepository(redis *client.RedisClient) *RedisProfileRepository {
	return &RedisProfileRepository{redis: redis}
}

// Get returns the stored profile, or the empty default when none exists yet.
func (r *RedisProfileRepository) Get(ctx context.Context) (ChildProfile, error) {
	if r.redis == nil {
		return ChildProfile{}, fmt.Errorf("profile store not configured")
	}

	raw, err := r.redis.Get(ctx, profileKey)
	if err == redis.Nil {
		return ChildProfile{}, nil
	}
	if err != nil {
		return ChildProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile ChildProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return ChildProfile{}, fmt.Errorf("failed to parse stored profile: %w", err)
	}
	return profile, nil
}

// Append merges newInfo into the stored profile under an optimistic WATCH
// transaction, so concurrent updates re-read the freshest value instead of
// overwriting each other. Retries a bounded number of times when a
// concurrent write invalidates the transaction.
func (r *RedisProfileRepository) Append(ctx context.Context, newInfo string, now time.Time) (ChildProfile, error) {
	if r.redis == nil {
		return ChildProfile{}, fmt.Errorf("profile store not configured")
	}

	var result ChildProfile
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, profileKey).Result()
		if err != nil && err != redis.Nil {
			return err
		}

		var profile ChildProfile
		if err == nil {
			if uerr := json.Unmarshal([]byte(raw), &profile); uerr != nil {
				return fmt.Errorf("failed to parse stored profile: %w", uerr)
			}
		}

		ts := now
		result = ChildProfile{
			Info:        MergeProfileInfo(profile.Info, newInfo),
			LastUpdated: &ts,
		}

		payload, err := json.Marshal(result)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, profileKey, string(payload), 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < profileMaxRetries; attempt++ {
		err := r.redis.Watch(ctx, txf, profileKey)
		if err == nil {
			return result, nil
		}
		if err == redis.TxFailedErr {
			continue
		}
		return ChildProfile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return ChildProfile{}, fmt.Errorf("failed to update profile after %d attempts", profileMaxRetries)
}
