package db

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"sales_insights/internal/domain"

	"gorm.io/gorm"
)

// insertBatchSize caps the rows per INSERT statement during ingestion
const insertBatchSize = 100

// SearchFilter selects one page of the text search
type SearchFilter struct {
	Text   string // Substring to look for, empty matches everything
	Offset int    // Rows to skip
	Limit  int    // Maximum rows to return
}

// TransactionRepository is the Record Store for transactions
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository wraps a GORM handle
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// InsertMany stores every record as a new row inside a single transaction
func (r *TransactionRepository) InsertMany(ctx context.Context, txs []domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&txs, insertBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

// Search matches title and description case-insensitively, plus price when the
// text is a number, and returns one page ordered by id.
func (r *TransactionRepository) Search(ctx context.Context, f SearchFilter) ([]domain.Transaction, error) {
	// GORM ignores a negative offset, which would restart at the first row
	if f.Offset < 0 {
		return []domain.Transaction{}, nil
	}
	query := r.db.WithContext(ctx).Model(&domain.Transaction{})
	if f.Text != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Text)) + "%"
		cond := r.db.Where("LOWER(title) LIKE ? ESCAPE '!'", pattern).
			Or("LOWER(description) LIKE ? ESCAPE '!'", pattern)
		if price, ok := parsePrice(f.Text); ok {
			cond = cond.Or("price = ?", price)
		}
		query = query.Where(cond)
	}

	txs := make([]domain.Transaction, 0)
	if err := query.Order("id ASC").Offset(f.Offset).Limit(f.Limit).Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("search transactions: %w", err)
	}
	return txs, nil
}

// ListInInterval returns every transaction sold inside the interval, ordered by id
func (r *TransactionRepository) ListInInterval(ctx context.Context, iv domain.Interval) ([]domain.Transaction, error) {
	txs := make([]domain.Transaction, 0)
	if err := r.inInterval(ctx, iv).Order("id ASC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Statistics sums price and counts sold/unsold records in the interval
func (r *TransactionRepository) Statistics(ctx context.Context, iv domain.Interval) (domain.Statistics, error) {
	var row struct {
		TotalSales   float64
		SoldItems    int64
		NotSoldItems int64
	}
	err := r.inInterval(ctx, iv).
		Select("COALESCE(SUM(price), 0) AS total_sales, " +
			"COALESCE(SUM(CASE WHEN sold THEN 1 ELSE 0 END), 0) AS sold_items, " +
			"COALESCE(SUM(CASE WHEN sold THEN 0 ELSE 1 END), 0) AS not_sold_items").
		Scan(&row).Error
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("transaction statistics: %w", err)
	}
	return domain.Statistics{
		TotalSales:   row.TotalSales,
		SoldItems:    row.SoldItems,
		NotSoldItems: row.NotSoldItems,
	}, nil
}

// PriceBucketCounts counts records per price bucket. Empty buckets are absent.
func (r *TransactionRepository) PriceBucketCounts(ctx context.Context, iv domain.Interval) ([]domain.BucketCount, error) {
	var rows []struct {
		BucketIndex int
		RecordCount int64
	}
	err := r.inInterval(ctx, iv).
		Select(bucketExpr() + " AS bucket_index, COUNT(*) AS record_count").
		Group("bucket_index").
		Order("bucket_index ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("price buckets: %w", err)
	}
	counts := make([]domain.BucketCount, len(rows))
	for i, row := range rows {
		counts[i] = domain.BucketCount{Index: row.BucketIndex, Count: row.RecordCount}
	}
	return counts, nil
}

// CategoryCounts counts records per category present in the interval
func (r *TransactionRepository) CategoryCounts(ctx context.Context, iv domain.Interval) ([]domain.CategoryCount, error) {
	var rows []struct {
		Category    string
		RecordCount int64
	}
	err := r.inInterval(ctx, iv).
		Select("category, COUNT(*) AS record_count").
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	counts := make([]domain.CategoryCount, len(rows))
	for i, row := range rows {
		counts[i] = domain.CategoryCount{Category: row.Category, Count: row.RecordCount}
	}
	return counts, nil
}

func (r *TransactionRepository) inInterval(ctx context.Context, iv domain.Interval) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("date_of_sale >= ? AND date_of_sale < ?", iv.Start, iv.End)
}

// bucketExpr maps price to its index in domain.PriceBuckets, or to
// domain.OtherBucketIndex for prices below the first boundary.
func bucketExpr() string {
	var b strings.Builder
	b.WriteString("CASE")
	fmt.Fprintf(&b, " WHEN price < %s THEN %d", sqlNumber(domain.PriceBoundaries[0]), domain.OtherBucketIndex)
	last := len(domain.PriceBuckets) - 1
	for i, bucket := range domain.PriceBuckets[:last] {
		fmt.Fprintf(&b, " WHEN price < %s THEN %d", sqlNumber(bucket.Max), i)
	}
	fmt.Fprintf(&b, " ELSE %d END", last)
	return b.String()
}

func sqlNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

func parsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
