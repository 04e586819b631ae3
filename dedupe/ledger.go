package dedupe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ledger records which products already have generated videos, backed by a
// RedisBloom filter. Batch re-runs consult it before spending LLM and TTS
// calls on a product that is already done. False positives are possible
// (bloom semantics); false negatives are not.
type Ledger struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// Config configures the Redis connection and filter key.
type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
	// Capacity and ErrorRate feed BF.RESERVE on first use.
	Capacity  int
	ErrorRate float64
}

// New connects and verifies the Redis server, reserving the bloom filter if
// it does not exist yet.
func New(cfg Config) (*Ledger, error) {
	if cfg.Key == "" {
		cfg.Key = "products:generated"
	}
	if cfg.TTL == 0 {
		cfg.TTL = 30 * 24 * time.Hour
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = 100000
	}
	if cfg.ErrorRate == 0 {
		cfg.ErrorRate = 0.001
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}

	l := &Ledger{client: client, key: cfg.Key, ttl: cfg.TTL}
	if err := l.reserve(ctx, cfg.Capacity, cfg.ErrorRate); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Ledger) reserve(ctx context.Context, capacity int, errorRate float64) error {
	err := l.client.Do(ctx, "BF.RESERVE", l.key, errorRate, capacity).Err()
	if err == nil {
		if l.ttl > 0 {
			l.client.Expire(ctx, l.key, l.ttl)
		}
		return nil
	}
	// An existing filter is fine; anything else is not.
	if strings.Contains(strings.ToLower(err.Error()), "exists") {
		return nil
	}
	return fmt.Errorf("reserve bloom filter %s: %w", l.key, err)
}

// productKey hashes the job's base name so arbitrary titles stay within key
// size limits.
func productKey(baseName string) string {
	sum := sha256.Sum256([]byte(baseName))
	return hex.EncodeToString(sum[:])
}

// Seen reports whether a product was already generated. Lookup errors
// degrade to "not seen": regenerating a video is cheaper than skipping one.
func (l *Ledger) Seen(ctx context.Context, baseName string) bool {
	res, err := l.client.Do(ctx, "BF.EXISTS", l.key, productKey(baseName)).Int()
	if err != nil {
		return false
	}
	return res == 1
}

// Mark records a finished product.
func (l *Ledger) Mark(ctx context.Context, baseName string) error {
	return l.client.Do(ctx, "BF.ADD", l.key, productKey(baseName)).Err()
}

// Close releases the Redis connection.
func (l *Ledger) Close() error { return l.client.Close() }
