package service

import (
	"context"
	"fmt"
	"math"

	"sales_insights/internal/db"
	"sales_insights/internal/domain"

	"golang.org/x/sync/errgroup"
)

// SearchQuery selects one page of search results. Page is 1-based.
type SearchQuery struct {
	Page    int
	PerPage int
	Text    string
}

// Search returns one page of transactions matching the query text
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]domain.Transaction, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	page := q.Page
	if page < 1 {
		page = 1
	}
	// The offset of a page this far out does not fit in an int
	if q.PerPage > 0 && page-1 > math.MaxInt/q.PerPage {
		return []domain.Transaction{}, nil
	}
	txs, err := s.store.Search(ctx, db.SearchFilter{
		Text:   q.Text,
		Offset: (page - 1) * q.PerPage,
		Limit:  q.PerPage,
	})
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, nil
}

// Statistics returns total sales and sold/unsold counts in the interval
func (s *Service) Statistics(ctx context.Context, iv domain.Interval) (domain.Statistics, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()
	return s.store.Statistics(ctx, iv)
}

// BarChart returns the fixed series of price buckets for the interval
func (s *Service) BarChart(ctx context.Context, iv domain.Interval) ([]domain.BarChartEntry, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	counts, err := s.store.PriceBucketCounts(ctx, iv)
	if err != nil {
		return nil, err
	}
	return domain.NewBarChart(counts), nil
}

// PieChart returns one count per category present in the interval
func (s *Service) PieChart(ctx context.Context, iv domain.Interval) ([]domain.CategoryCount, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	counts, err := s.store.CategoryCounts(ctx, iv)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []domain.CategoryCount{}
	}
	return counts, nil
}

// Combined runs the listing and the three aggregations concurrently.
// The first failure cancels the remaining reads.
func (s *Service) Combined(ctx context.Context, iv domain.Interval) (domain.Combined, error) {
	var out domain.Combined
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ctx, cancel := s.storeContext(gctx)
		defer cancel()
		txs, err := s.store.ListInInterval(ctx, iv)
		if err != nil {
			return fmt.Errorf("transactions: %w", err)
		}
		if txs == nil {
			txs = []domain.Transaction{}
		}
		out.Transactions = txs
		return nil
	})
	g.Go(func() error {
		stats, err := s.Statistics(gctx, iv)
		if err != nil {
			return fmt.Errorf("statistics: %w", err)
		}
		out.Statistics = stats
		return nil
	})
	g.Go(func() error {
		chart, err := s.BarChart(gctx, iv)
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		out.BarChart = chart
		return nil
	})
	g.Go(func() error {
		pie, err := s.PieChart(gctx, iv)
		if err != nil {
			return fmt.Errorf("pie chart: %w", err)
		}
		out.PieChart = pie
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.Combined{}, err
	}
	return out, nil
}
