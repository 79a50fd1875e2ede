package api

import (
	"context"  // Context for service and Redis calls
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTL

	"sales_insights/internal/domain"  // Domain models
	"sales_insights/internal/service" // Query and ingestion service
	"sales_insights/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const (
	defaultPage    = 1   // Default page number
	defaultPerPage = 10  // Default page size
	maxPerPage     = 100 // Upper bound for page size
)

// cacheHeader reports whether a response came from Redis
const cacheHeader = "X-Cache"

// Analytics is the service surface the HTTP handlers depend on
type Analytics interface {
	Initialize(ctx context.Context) (int, error)
	Search(ctx context.Context, q service.SearchQuery) ([]domain.Transaction, error)
	Statistics(ctx context.Context, iv domain.Interval) (domain.Statistics, error)
	BarChart(ctx context.Context, iv domain.Interval) ([]domain.BarChartEntry, error)
	PieChart(ctx context.Context, iv domain.Interval) ([]domain.CategoryCount, error)
	Combined(ctx context.Context, iv domain.Interval) (domain.Combined, error)
}

// Options configures handler behaviour shared by every route
type Options struct {
	Year     int           // Year used to turn ?month= into an interval
	CacheTTL time.Duration // Lifetime of cached responses
}

// queryInt reads a positive integer query parameter, falling back to def
func queryInt(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v // Use the value if valid
	}
	return def
}

// respondError logs the failure and writes the error body.
// Invalid month input is a 400, everything else a 500.
func respondError(c *gin.Context, op string, err error) {
	_ = c.Error(err) // Record for the access log
	// Distinguish bad input from store or upstream failures
	if errors.Is(err, domain.ErrInvalidMonth) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month", "detail": err.Error()})
		return
	}
	logrus.WithFields(logrus.Fields{
		"operation": op,          // Failing operation
		"error":     err.Error(), // Error message
	}).Error("Request failed") // Log failure
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op, "detail": err.Error()})
}

// cached serves key from Redis when present, otherwise computes, stores and returns the value
func cached[T any](c *gin.Context, rdb *redis.Client, key string, ttl time.Duration, op string, compute func(ctx context.Context) (T, error)) {
	ctx := c.Request.Context() // Request-scoped context
	var hit T                  // Cached value
	found, err := utils.GetCache(ctx, rdb, key, &hit)
	// If found in cache, return it
	if err == nil && found {
		c.Header(cacheHeader, "HIT")
		c.JSON(http.StatusOK, hit)
		return
	}
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warn("Cache read failed")
		// Drop the entry so a corrupt value is not served again
		if err := utils.DeleteCache(ctx, rdb, key); err != nil {
			logrus.WithField("key", key).WithError(err).Warn("Cache eviction failed")
		}
	}
	value, err := compute(ctx) // Compute from the store
	if err != nil {
		respondError(c, op, err)
		return
	}
	// Cache the result for future requests
	if err := utils.SetCache(ctx, rdb, key, value, ttl); err != nil {
		logrus.WithField("key", key).WithError(err).Warn("Cache write failed")
	}
	c.Header(cacheHeader, "MISS")
	c.JSON(http.StatusOK, value)
}
