package domain

import "strconv"

// OtherBucketLabel holds prices outside every range, i.e. negative prices
const OtherBucketLabel = "Other"

// PriceBucket is a half-open price range [Min, Max). Open is set on the top bucket, which has no Max.
type PriceBucket struct {
	Label string
	Min   float64
	Max   float64
	Open  bool
}

// BarChartEntry is one bar of the price histogram
type BarChartEntry struct {
	Range string `json:"range"` // Bucket label, e.g. "100-200" or "900+"
	Count int64  `json:"count"` // Records whose price falls in the bucket
}

// PriceBoundaries are the lower bounds of each bucket; the last one is open-ended
var PriceBoundaries = []float64{0, 100, 200, 300, 400, 500, 600, 700, 800, 900}

// PriceBuckets lists the ranges in chart order, without the Other bucket
var PriceBuckets = buildPriceBuckets(PriceBoundaries)

func buildPriceBuckets(bounds []float64) []PriceBucket {
	buckets := make([]PriceBucket, 0, len(bounds))
	for i, lo := range bounds {
		if i == len(bounds)-1 {
			buckets = append(buckets, PriceBucket{Label: formatBound(lo) + "+", Min: lo, Open: true})
			break
		}
		hi := bounds[i+1]
		buckets = append(buckets, PriceBucket{Label: formatBound(lo) + "-" + formatBound(hi), Min: lo, Max: hi})
	}
	return buckets
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BucketCount is a raw per-bucket count as produced by the store.
// Index addresses PriceBuckets; OtherBucketIndex addresses the Other bucket.
type BucketCount struct {
	Index int
	Count int64
}

// OtherBucketIndex is the index used for prices below the first boundary
var OtherBucketIndex = len(PriceBuckets)

// BucketIndex returns the chart position for a price
func BucketIndex(price float64) int {
	if price < PriceBoundaries[0] {
		return OtherBucketIndex
	}
	for i := len(PriceBuckets) - 1; i >= 0; i-- {
		if price >= PriceBuckets[i].Min {
			return i
		}
	}
	return OtherBucketIndex
}

// NewBarChart expands sparse counts into the fixed series, zero-filling empty buckets.
// Unknown indexes are folded into the Other bucket.
func NewBarChart(counts []BucketCount) []BarChartEntry {
	entries := make([]BarChartEntry, len(PriceBuckets)+1)
	for i, b := range PriceBuckets {
		entries[i] = BarChartEntry{Range: b.Label}
	}
	entries[OtherBucketIndex] = BarChartEntry{Range: OtherBucketLabel}
	for _, c := range counts {
		idx := c.Index
		if idx < 0 || idx > OtherBucketIndex {
			idx = OtherBucketIndex
		}
		entries[idx].Count += c.Count
	}
	return entries
}
