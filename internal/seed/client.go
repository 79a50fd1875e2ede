package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"sales_insights/internal/domain"

	"github.com/sirupsen/logrus"
)

// maxErrorBody bounds how much of a failed response is copied into the error
const maxErrorBody = 512

// ErrUpstream marks a failure reaching or reading the seed feed
var ErrUpstream = errors.New("seed feed unavailable")

// record mirrors one object of the feed. Fields the store does not keep (id, image) are dropped.
type record struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	DateOfSale  time.Time `json:"dateOfSale"`
	Sold        bool      `json:"sold"`
}

// Client downloads the seed feed
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for url with the given request timeout
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and decodes the feed as a list of transactions
func (c *Client) Fetch(ctx context.Context) ([]domain.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}

	var records []record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode feed: %v", ErrUpstream, err)
	}

	logrus.WithFields(logrus.Fields{
		"url":         c.url,
		"records":     len(records),
		"duration_ms": time.Since(started).Milliseconds(),
	}).Info("Seed feed downloaded")

	txs := make([]domain.Transaction, len(records))
	for i, r := range records {
		txs[i] = domain.Transaction{
			Title:       r.Title,
			Description: r.Description,
			Price:       r.Price,
			Category:    r.Category,
			DateOfSale:  r.DateOfSale.UTC(),
			Sold:        r.Sold,
		}
	}
	return txs, nil
}
