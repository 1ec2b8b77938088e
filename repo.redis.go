package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HAdverts is the default name of the redis hash holding the snapshot.
const HAdverts string = "adverts"

var _ SnapshotStore = (*redisSnapshotStore)(nil)

type redisSnapshotStore struct {
	logger *zap.Logger
	client *redis.Client
	hash   string
}

// NewRedisSnapshotStore provides an instance of redis-based snapshot storage.
func NewRedisSnapshotStore(logger *zap.Logger, client *redis.Client, hash string) SnapshotStore {
	if hash == "" {
		hash = HAdverts
	}
	return &redisSnapshotStore{
		logger: logger,
		client: client,
		hash:   hash,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Load retrieves all adverts stored in the redis hash ordered by their identifier.
func (rs *redisSnapshotStore) Load(ctx context.Context) ([]Advert, error) {
	values, err := rs.client.HVals(ctx, rs.hash).Result()
	if err != nil {
		return nil, err
	}
	adverts := make([]Advert, 0, len(values))
	for _, advertJSONString := range values {
		var advert Advert
		if err = json.Unmarshal([]byte(advertJSONString), &advert); err != nil {
			return nil, err
		}
		adverts = append(adverts, advert)
	}
	sort.Slice(adverts, func(i, j int) bool { return adverts[i].ID < adverts[j].ID })
	return adverts, nil
}

// Save replaces the redis hash content inside a MULTI/EXEC transaction.
func (rs *redisSnapshotStore) Save(ctx context.Context, adverts []Advert) error {
	values := make([]interface{}, 0, 2*len(adverts))
	for _, advert := range adverts {
		advertBytes, err := json.Marshal(advert)
		if err != nil {
			return err
		}
		values = append(values, strconv.Itoa(advert.ID), advertBytes)
	}
	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, rs.hash)
		if len(values) > 0 {
			pipe.HSet(ctx, rs.hash, values...)
		}
		return nil
	})
	return err
}

// Close releases the redis client connections.
func (rs *redisSnapshotStore) Close() error {
	return rs.client.Close()
}
