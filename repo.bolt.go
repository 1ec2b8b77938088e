package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

var _ SnapshotStore = (*boltSnapshotStore)(nil)

type boltSnapshotStore struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltSnapshotStore provides an instance of bolt-based snapshot storage.
func NewBoltSnapshotStore(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) SnapshotStore {
	return &boltSnapshotStore{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based snapshot storage.
func (bs *boltSnapshotStore) Close() error {
	return bs.client.Close()
}

// Load retrieves all adverts stored in the bucket ordered by their identifier.
func (bs *boltSnapshotStore) Load(_ context.Context) ([]Advert, error) {
	tx, err := bs.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	adverts := []Advert{}
	bucket := tx.Bucket([]byte(bs.config.BucketName))
	if bucket == nil {
		return adverts, nil
	}

	// Create a cursor on the adverts' bucket.
	c := bucket.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var advert Advert
		if err = json.Unmarshal(v, &advert); err != nil {
			return nil, fmt.Errorf("failed to decode advert %s: %w", k, err)
		}
		adverts = append(adverts, advert)
	}
	return adverts, nil
}

// Save replaces the bucket content with the given adverts in a single transaction.
func (bs *boltSnapshotStore) Save(_ context.Context, adverts []Advert) error {
	name := []byte(bs.config.BucketName)
	return bs.client.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(name); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		bucket, err := tx.CreateBucket(name)
		if err != nil {
			return err
		}
		for _, advert := range adverts {
			advertBytes, err := json.Marshal(advert)
			if err != nil {
				return err
			}
			if err = bucket.Put([]byte(strconv.Itoa(advert.ID)), advertBytes); err != nil {
				return err
			}
		}
		return nil
	})
}
