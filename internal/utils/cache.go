package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Integer formatting for keys
	"strings"       // Key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// CachePrefix namespaces every key written by the service
const CachePrefix = "sales:"

// scanBatch is the COUNT hint used while walking keys to invalidate
const scanBatch = 100

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves like an empty cache.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Cache disabled
	}
	val, err := rdb.Get(ctx, key).Bytes() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err // Corrupt entry
	}
	return true, nil
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Cache disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	if rdb == nil {
		return nil // Cache disabled
	}
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// DeleteByPrefix removes every key starting with prefix and returns how many were deleted
func DeleteByPrefix(ctx context.Context, rdb *redis.Client, prefix string) (int64, error) {
	if rdb == nil {
		return 0, nil // Cache disabled
	}
	// Collect first: deleting while the cursor walks the keyspace can skip keys
	var keys []string
	iter := rdb.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, err // Scan failed midway
	}
	var deleted int64 // Running total of removed keys
	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		n, err := rdb.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	return deleted, nil
}

// MonthKey builds the cache key for a monthly view, e.g. "sales:statistics:year=2023:month=3"
func MonthKey(view string, year, month int) string {
	return CachePrefix + view + ":year=" + strconv.Itoa(year) + ":month=" + strconv.Itoa(month)
}

// SearchKey builds the cache key for one page of search results
func SearchKey(page, perPage int, search string) string {
	parts := []string{
		"page=" + strconv.Itoa(page),       // Page number
		"perPage=" + strconv.Itoa(perPage), // Page size
		"search=" + strconv.Quote(search),  // Quoted so separators inside the term stay unambiguous
	}
	return CachePrefix + "transactions:" + strings.Join(parts, ":")
}
