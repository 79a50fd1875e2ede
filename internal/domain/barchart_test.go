package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceBuckets_Labels(t *testing.T) {
	chart := NewBarChart(nil)
	labels := make([]string, len(chart))
	for i, e := range chart {
		labels[i] = e.Range
	}
	assert.Equal(t, []string{
		"0-100", "100-200", "200-300", "300-400", "400-500",
		"500-600", "600-700", "700-800", "800-900", "900+", "Other",
	}, labels)
}

func TestBucketIndex(t *testing.T) {
	cases := map[float64]string{
		0:     "0-100",
		50:    "0-100",
		99.99: "0-100",
		100:   "100-200",
		150:   "100-200",
		899.5: "800-900",
		900:   "900+",
		950:   "900+",
		1e9:   "900+",
		-0.01: "Other",
		-250:  "Other",
	}
	chart := NewBarChart(nil)
	for price, label := range cases {
		assert.Equal(t, label, chart[BucketIndex(price)].Range, "price %v", price)
	}
}

func TestNewBarChart_ZeroFillsAndKeepsLength(t *testing.T) {
	chart := NewBarChart([]BucketCount{{Index: 0, Count: 1}, {Index: 1, Count: 1}, {Index: 9, Count: 1}})

	assert.Len(t, chart, 11)
	var total int64
	for i, e := range chart {
		total += e.Count
		switch i {
		case 0, 1, 9:
			assert.Equal(t, int64(1), e.Count, e.Range)
		default:
			assert.Zero(t, e.Count, e.Range)
		}
	}
	assert.Equal(t, int64(3), total)
}

func TestNewBarChart_UnknownIndexFoldsIntoOther(t *testing.T) {
	chart := NewBarChart([]BucketCount{{Index: 42, Count: 2}, {Index: -1, Count: 1}, {Index: OtherBucketIndex, Count: 4}})
	assert.Equal(t, int64(7), chart[OtherBucketIndex].Count)
}
