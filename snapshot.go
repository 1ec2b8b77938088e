package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Snapshotter loads the catalog from a snapshot store at startup and
// writes it back at shutdown. Snapshot failures are logged and never
// returned so they cannot abort the service lifecycle.
type Snapshotter struct {
	logger  *zap.Logger
	store   SnapshotStore
	service AdvertServiceProvider
	metrics *Metrics
	timeout time.Duration
}

func NewSnapshotter(logger *zap.Logger, store SnapshotStore, service AdvertServiceProvider, metrics *Metrics, timeout time.Duration) *Snapshotter {
	return &Snapshotter{
		logger:  logger,
		store:   store,
		service: service,
		metrics: metrics,
		timeout: timeout,
	}
}

// NewSnapshotStore builds the snapshot backend selected by the configuration.
func NewSnapshotStore(config *Config, logger *zap.Logger) (SnapshotStore, error) {
	switch config.Snapshot.Backend {
	case SnapshotBackendBolt:
		client, err := GetBoltDBClient(config)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to boltDB: %s", err)
		}
		return NewBoltSnapshotStore(logger, &config.BoltDB, client), nil
	case SnapshotBackendRedis:
		client, err := GetRedisClient(config)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis server: %s", err)
		}
		return NewRedisSnapshotStore(logger, client, config.Redis.HashName), nil
	default:
		return NewFileSnapshotStore(logger, config.Snapshot.FilePath), nil
	}
}

// Load replaces the catalog content with the stored adverts. Adverts are
// assigned fresh identifiers and invalid records are skipped. It returns
// the number of loaded adverts.
func (s *Snapshotter) Load(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	adverts, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("snapshot: failed to load adverts", zap.Error(err))
		s.record("load", "failure")
		return 0
	}

	valid := make([]Advert, 0, len(adverts))
	for i := range adverts {
		if verr := ValidateAdvertRequestBody(&adverts[i]); verr != nil {
			s.logger.Warn("snapshot: skipping invalid advert",
				zap.Int("advert.index", i),
				zap.Int("advert.id", adverts[i].ID),
				zap.Error(verr),
			)
			continue
		}
		valid = append(valid, adverts[i])
	}

	if err = s.service.Clear(ctx); err != nil {
		s.logger.Error("snapshot: failed to reset catalog", zap.Error(err))
		s.record("load", "failure")
		return 0
	}

	created, err := s.service.AddMany(ctx, valid)
	if err != nil {
		s.logger.Error("snapshot: failed to replay adverts", zap.Int("adverts.count", len(valid)), zap.Error(err))
		s.record("load", "failure")
		return 0
	}
	s.logger.Info("snapshot: adverts have been loaded successfully",
		zap.Int("adverts.count", len(created)),
		zap.Int("adverts.skipped", len(adverts)-len(valid)),
	)
	s.record("load", "success")
	return len(created)
}

// Save writes the whole catalog to the snapshot store. It reports success.
func (s *Snapshotter) Save(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	adverts, err := s.service.GetAll(ctx)
	if err != nil {
		s.logger.Error("snapshot: failed to collect adverts", zap.Error(err))
		s.record("save", "failure")
		return false
	}

	if err = s.store.Save(ctx, adverts); err != nil {
		s.logger.Error("snapshot: failed to save adverts", zap.Int("adverts.count", len(adverts)), zap.Error(err))
		s.record("save", "failure")
		return false
	}
	s.logger.Info("snapshot: adverts have been saved successfully", zap.Int("adverts.count", len(adverts)))
	s.record("save", "success")
	return true
}

// Close releases the snapshot store.
func (s *Snapshotter) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Error("snapshot: failed to close store", zap.Error(err))
	}
}

func (s *Snapshotter) record(operation, result string) {
	if s.metrics != nil {
		s.metrics.SnapshotOperations.WithLabelValues(operation, result).Inc()
	}
}
