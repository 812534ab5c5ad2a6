package services

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"gelirgider/internal/logger"
	"gelirgider/internal/store"
	"gelirgider/internal/testutil"
)

var ctx = context.Background()

func init() {
	logger.Init("test")
}

func newLedger(t *testing.T) *store.Store {
	t.Helper()
	return store.New(
		store.WithClock(testutil.FixedClock),
		store.WithIDGenerator(testutil.SequentialIDs("id")),
		store.WithLogger(zap.NewNop().Sugar()),
	)
}

func ptr[T any](v T) *T { return &v }
