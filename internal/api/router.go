package api

import (
	"net/http" // HTTP status codes

	"sales_insights/internal/middleware" // Logging and recovery middleware

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// NewRouter wires every route onto a fresh Gin engine
func NewRouter(svc Analytics, rdb *redis.Client, opts Options, logger *logrus.Logger) (*gin.Engine, error) {
	r := gin.New() // Gin router instance
	r.Use(middleware.RequestLogger(logger), middleware.Recovery(logger), cors.Default())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}

	r.GET("/health", HealthHandler)                                 // Liveness probe
	r.GET("/initialize", InitializeHandler(svc, rdb))               // Seed the store
	r.GET("/transactions", ListTransactionsHandler(svc, rdb, opts)) // Paginated search
	r.GET("/statistics", StatisticsHandler(svc, rdb, opts))         // Monthly statistics
	r.GET("/barchart", BarChartHandler(svc, rdb, opts))             // Price buckets
	r.GET("/piechart", PieChartHandler(svc, rdb, opts))             // Category counts
	r.GET("/combined", CombinedHandler(svc, rdb, opts))             // All monthly views
	return r, nil
}

// HealthHandler reports that the process is serving
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
