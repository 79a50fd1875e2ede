package api

import (
	"context"  // Context for service calls
	"net/http" // HTTP status codes

	"sales_insights/internal/domain"  // Domain models
	"sales_insights/internal/service" // Query and ingestion service
	"sales_insights/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// InitializeHandler loads the seed feed into the store and clears cached responses
func InitializeHandler(svc Analytics, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()        // Request-scoped context
		count, err := svc.Initialize(ctx) // Fetch and insert
		if err != nil {
			respondError(c, "initialize database", err)
			return
		}
		// Every cached view is stale after new rows land
		deleted, err := utils.DeleteByPrefix(ctx, rdb, utils.CachePrefix)
		if err != nil {
			logrus.WithError(err).Warn("Cache invalidation failed")
		}
		// Log successful ingestion
		logrus.WithFields(logrus.Fields{
			"records":      count,   // Inserted records
			"cache_purged": deleted, // Removed cache entries
		}).Info("Database initialized")
		c.String(http.StatusOK, "Database initialized")
	}
}

// ListTransactionsHandler returns one page of transactions matching ?search=
func ListTransactionsHandler(svc Analytics, rdb *redis.Client, opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := queryInt(c, "page", defaultPage)          // Page number
		perPage := queryInt(c, "perPage", defaultPerPage) // Page size
		// Check page size within limits
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
		search := c.DefaultQuery("search", "") // Search text
		q := service.SearchQuery{Page: page, PerPage: perPage, Text: search}
		cached(c, rdb, utils.SearchKey(page, perPage, search), opts.CacheTTL, "fetch transactions", func(ctx context.Context) ([]domain.Transaction, error) {
			return svc.Search(ctx, q)
		})
	}
}
