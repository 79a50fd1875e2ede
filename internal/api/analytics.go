package api

import (
	"context" // Context for service calls

	"sales_insights/internal/domain" // Domain models
	"sales_insights/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// monthlyHandler parses ?month=, then serves view from cache or from compute
func monthlyHandler[T any](view, op string, rdb *redis.Client, opts Options, compute func(ctx context.Context, iv domain.Interval) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		month, err := domain.ParseMonth(c.Query("month")) // Validate month
		if err != nil {
			respondError(c, op, err)
			return
		}
		iv := domain.MonthInterval(opts.Year, month) // [start of month, start of next month)
		key := utils.MonthKey(view, opts.Year, int(month))
		cached(c, rdb, key, opts.CacheTTL, op, func(ctx context.Context) (T, error) {
			return compute(ctx, iv)
		})
	}
}

// StatisticsHandler returns total sales and sold/unsold counts for ?month=
func StatisticsHandler(svc Analytics, rdb *redis.Client, opts Options) gin.HandlerFunc {
	return monthlyHandler("statistics", "compute statistics", rdb, opts, svc.Statistics)
}

// BarChartHandler returns the price histogram for ?month=
func BarChartHandler(svc Analytics, rdb *redis.Client, opts Options) gin.HandlerFunc {
	return monthlyHandler("barchart", "compute bar chart", rdb, opts, svc.BarChart)
}

// PieChartHandler returns per-category counts for ?month=
func PieChartHandler(svc Analytics, rdb *redis.Client, opts Options) gin.HandlerFunc {
	return monthlyHandler("piechart", "compute pie chart", rdb, opts, svc.PieChart)
}

// CombinedHandler returns transactions, statistics and both charts for ?month=
func CombinedHandler(svc Analytics, rdb *redis.Client, opts Options) gin.HandlerFunc {
	return monthlyHandler("combined", "compute combined view", rdb, opts, svc.Combined)
}
