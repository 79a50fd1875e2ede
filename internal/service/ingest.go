package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Initialize downloads the seed feed and inserts every record. It returns the number of records stored.
func (s *Service) Initialize(ctx context.Context) (int, error) {
	txs, err := s.seed.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch seed data: %w", err)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	started := time.Now()
	if err := s.store.InsertMany(storeCtx, txs); err != nil {
		return 0, fmt.Errorf("store seed data: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"records":     len(txs),
		"duration_ms": time.Since(started).Milliseconds(),
	}).Info("Seed data stored")
	return len(txs), nil
}
