package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// placeholder marks a key claimed by an in-flight request that has not yet
// produced a response.
const placeholder = "processing"

// checkAndSetScript claims the key atomically. Returns the existing value
// when another request already holds or completed the key, or an empty
// reply after claiming it.
var checkAndSetScript = redis.NewScript(`
local existing = redis.call('GET', KEYS[1])
if existing then
	return existing
end
if ARGV[1] ~= '' then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
else
	redis.call('SET', KEYS[1], ARGV[3], 'PX', ARGV[2])
end
return false
`)

// IdempotencyStore implements usecase.IdempotencyStore using Redis. Keys
// are claimed with a placeholder so concurrent retries of the same request
// observe the claim instead of double-writing.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "idem:",
	}
}

// CheckAndSet atomically checks if the key exists and claims it if not.
// Returns (true, existingValue, nil) when the key was already claimed.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	result, err := checkAndSetScript.Run(ctx, s.client,
		[]string{s.prefix + key},
		string(response), ttl.Milliseconds(), placeholder,
	).Result()
	if err == redis.Nil {
		// Empty reply: the key was claimed by this call.
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}

	existing, _ := result.(string)

	return true, []byte(existing), nil
}

// Update replaces a claimed key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}
