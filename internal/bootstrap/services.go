package bootstrap

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/metrics"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

func ProvideFetcher(client *s3.Client, cfg *Config, logger *slog.Logger) *dataset.Fetcher {
	return dataset.NewFetcher(client, cfg.S3Bucket, cfg.S3Prefix, logger)
}

func ProvideSnapshotCache(client *redis.Client, cfg *Config) *snapshot.Cache {
	return snapshot.NewCache(client, cfg.SnapshotTTL)
}

func ProvideSnapshotService(fetcher *dataset.Fetcher, cache *snapshot.Cache, cfg *Config, logger *slog.Logger, m *metrics.Metrics) *snapshot.Service {
	return snapshot.NewService(fetcher, cache, cfg.SnapshotTTL, logger, m)
}

var ServicesModule = fx.Options(
	fx.Provide(
		ProvideFetcher,
		ProvideSnapshotCache,
		ProvideSnapshotService,
	),
)
