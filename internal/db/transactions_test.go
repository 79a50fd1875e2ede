package db

import (
	"context"
	"testing"
	"time"

	"sales_insights/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) (*TransactionRepository, *gorm.DB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every pooled connection would get its own in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, Migrate(gdb))
	return NewTransactionRepository(gdb), gdb
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seed(t *testing.T, repo *TransactionRepository, txs ...domain.Transaction) {
	t.Helper()
	require.NoError(t, repo.InsertMany(context.Background(), txs))
}

func marchFixture() []domain.Transaction {
	return []domain.Transaction{
		{Title: "Backpack", Description: "Fits 15 inch laptops", Price: 50, Category: "bags", DateOfSale: day(2023, 3, 5), Sold: true},
		{Title: "Jacket", Description: "Slim fit cotton", Price: 150, Category: "clothing", DateOfSale: day(2023, 3, 15), Sold: false},
		{Title: "Monitor", Description: "27 inch 100% sRGB", Price: 950, Category: "electronics", DateOfSale: day(2023, 3, 25), Sold: true},
		{Title: "Ring", Description: "Gold plated", Price: 300, Category: "jewelery", DateOfSale: day(2023, 4, 1), Sold: true},
		{Title: "Dress", Description: "Summer dress", Price: 20, Category: "clothing", DateOfSale: day(2023, 2, 28), Sold: false},
	}
}

func TestInsertMany_AssignsIDs(t *testing.T) {
	repo, gdb := newTestRepo(t)

	seed(t, repo, marchFixture()...)

	var count int64
	require.NoError(t, gdb.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestInsertMany_Empty(t *testing.T) {
	repo, _ := newTestRepo(t)
	assert.NoError(t, repo.InsertMany(context.Background(), nil))
}

func TestInsertMany_DuplicateCallsAppend(t *testing.T) {
	repo, gdb := newTestRepo(t)

	seed(t, repo, marchFixture()...)
	seed(t, repo, marchFixture()...)

	var count int64
	require.NoError(t, gdb.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(10), count)
}

func TestStatistics_Scenario(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo, marchFixture()...)

	stats, err := repo.Statistics(context.Background(), domain.MonthInterval(2023, time.March))

	require.NoError(t, err)
	assert.Equal(t, domain.Statistics{TotalSales: 1150, SoldItems: 2, NotSoldItems: 1}, stats)
}

func TestStatistics_EmptyMonth(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo, marchFixture()...)

	stats, err := repo.Statistics(context.Background(), domain.MonthInterval(2023, time.July))

	require.NoError(t, err)
	assert.Equal(t, domain.Statistics{}, stats)
}

func TestStatistics_IntervalIsHalfOpen(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo,
		domain.Transaction{Title: "first", Price: 10, DateOfSale: day(2023, 12, 1), Sold: true},
		domain.Transaction{Title: "last", Price: 20, DateOfSale: time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), Sold: true},
		domain.Transaction{Title: "next year", Price: 40, DateOfSale: day(2024, 1, 1), Sold: true},
	)

	stats, err := repo.Statistics(context.Background(), domain.MonthInterval(2023, time.December))

	require.NoError(t, err)
	assert.Equal(t, float64(30), stats.TotalSales)
	assert.Equal(t, int64(2), stats.SoldItems)
}

func TestPriceBucketCounts_Scenario(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo, marchFixture()...)
	seed(t, repo, domain.Transaction{Title: "Refund", Price: -5, DateOfSale: day(2023, 3, 9)})

	counts, err := repo.PriceBucketCounts(context.Background(), domain.MonthInterval(2023, time.March))
	require.NoError(t, err)

	chart := domain.NewBarChart(counts)
	byLabel := map[string]int64{}
	var total int64
	for _, e := range chart {
		byLabel[e.Range] = e.Count
		total += e.Count
	}
	assert.Len(t, chart, 11)
	assert.Equal(t, int64(1), byLabel["0-100"])
	assert.Equal(t, int64(1), byLabel["100-200"])
	assert.Equal(t, int64(1), byLabel["900+"])
	assert.Equal(t, int64(1), byLabel["Other"])
	assert.Equal(t, int64(4), total)
}

func TestPriceBucketCounts_BoundariesAreLowerInclusive(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo,
		domain.Transaction{Price: 0, DateOfSale: day(2023, 5, 1)},
		domain.Transaction{Price: 100, DateOfSale: day(2023, 5, 2)},
		domain.Transaction{Price: 899.99, DateOfSale: day(2023, 5, 3)},
		domain.Transaction{Price: 900, DateOfSale: day(2023, 5, 4)},
	)

	counts, err := repo.PriceBucketCounts(context.Background(), domain.MonthInterval(2023, time.May))
	require.NoError(t, err)

	assert.Equal(t, []domain.BucketCount{
		{Index: 0, Count: 1},
		{Index: 1, Count: 1},
		{Index: 8, Count: 1},
		{Index: 9, Count: 1},
	}, counts)
}

func TestCategoryCounts(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo, marchFixture()...)
	seed(t, repo, domain.Transaction{Title: "Shirt", Price: 30, Category: "clothing", DateOfSale: day(2023, 3, 2)})

	counts, err := repo.CategoryCounts(context.Background(), domain.MonthInterval(2023, time.March))

	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryCount{
		{Category: "bags", Count: 1},
		{Category: "clothing", Count: 2},
		{Category: "electronics", Count: 1},
	}, counts)
}

func TestListInInterval(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo, marchFixture()...)

	txs, err := repo.ListInInterval(context.Background(), domain.MonthInterval(2023, time.March))

	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "Backpack", txs[0].Title)
	assert.Equal(t, "Monitor", txs[2].Title)

	txs, err = repo.ListInInterval(context.Background(), domain.MonthInterval(2023, time.August))
	require.NoError(t, err)
	assert.NotNil(t, txs)
	assert.Empty(t, txs)
}

func TestSearch_CaseInsensitiveOnTitleAndDescription(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo, marchFixture()...)

	txs, err := repo.Search(context.Background(), SearchFilter{Text: "INCH", Limit: 10})
	require.NoError(t, err)
	titles := make([]string, len(txs))
	for i, tx := range txs {
		titles[i] = tx.Title
	}
	assert.Equal(t, []string{"Backpack", "Monitor"}, titles)

	txs, err = repo.Search(context.Background(), SearchFilter{Text: "jack", Limit: 10})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Jacket", txs[0].Title)
}

func TestSearch_NumericTermMatchesPrice(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo, marchFixture()...)

	txs, err := repo.Search(context.Background(), SearchFilter{Text: "150", Limit: 10})

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Jacket", txs[0].Title)
}

func TestSearch_WildcardsAreLiteral(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo, marchFixture()...)

	txs, err := repo.Search(context.Background(), SearchFilter{Text: "100%", Limit: 10})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Monitor", txs[0].Title)

	txs, err = repo.Search(context.Background(), SearchFilter{Text: "_", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSearch_Pagination(t *testing.T) {
	repo, _ := newTestRepo(t)
	var txs []domain.Transaction
	for i := 1; i <= 25; i++ {
		txs = append(txs, domain.Transaction{Title: "item " + string(rune('a'+i-1)), Price: float64(i), DateOfSale: day(2023, 1, 1)})
	}
	seed(t, repo, txs...)

	page, err := repo.Search(context.Background(), SearchFilter{Offset: 10, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, float64(11), page[0].Price)
	assert.Equal(t, float64(20), page[9].Price)

	page, err = repo.Search(context.Background(), SearchFilter{Offset: 20, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page, 5)

	page, err = repo.Search(context.Background(), SearchFilter{Offset: 100, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestSearch_NegativeOffsetIsEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo, marchFixture()...)

	page, err := repo.Search(context.Background(), SearchFilter{Offset: -9223372036854775806, Limit: 10})

	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestBucketExpr(t *testing.T) {
	assert.Equal(t,
		"CASE WHEN price < 0 THEN 10 WHEN price < 100 THEN 0 WHEN price < 200 THEN 1 WHEN price < 300 THEN 2"+
			" WHEN price < 400 THEN 3 WHEN price < 500 THEN 4 WHEN price < 600 THEN 5 WHEN price < 700 THEN 6"+
			" WHEN price < 800 THEN 7 WHEN price < 900 THEN 8 ELSE 9 END",
		bucketExpr())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "50!% off!_now!!", escapeLike("50% off_now!"))
}
