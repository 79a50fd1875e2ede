package service

import (
	"context"
	"time"

	"sales_insights/internal/db"
	"sales_insights/internal/domain"
)

// TransactionStore is the Record Store the service reads from and writes to
type TransactionStore interface {
	InsertMany(ctx context.Context, txs []domain.Transaction) error
	Search(ctx context.Context, f db.SearchFilter) ([]domain.Transaction, error)
	ListInInterval(ctx context.Context, iv domain.Interval) ([]domain.Transaction, error)
	Statistics(ctx context.Context, iv domain.Interval) (domain.Statistics, error)
	PriceBucketCounts(ctx context.Context, iv domain.Interval) ([]domain.BucketCount, error)
	CategoryCounts(ctx context.Context, iv domain.Interval) ([]domain.CategoryCount, error)
}

// SeedFetcher supplies the records loaded by Initialize
type SeedFetcher interface {
	Fetch(ctx context.Context) ([]domain.Transaction, error)
}

// Service answers the ingestion and analytics operations
type Service struct {
	store     TransactionStore
	seed      SeedFetcher
	dbTimeout time.Duration
}

// New creates a Service. dbTimeout bounds every store call; zero disables the bound.
func New(store TransactionStore, seed SeedFetcher, dbTimeout time.Duration) *Service {
	return &Service{store: store, seed: seed, dbTimeout: dbTimeout}
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.dbTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.dbTimeout)
}
