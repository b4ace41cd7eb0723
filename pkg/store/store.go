// Package store defines the permanent storage service.
package store

import (
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.zlang.sh/pkg/logutil"
	. "src.zlang.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// Functions run on the database when it is opened, keyed by a description.
// Each file that defines a bucket registers its initialization here.
var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the permanent storage backend for history.
type DBStore interface {
	Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", dbname, err)
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	descs := make([]string, 0, len(initDB))
	for desc := range initDB {
		descs = append(descs, desc)
	}
	sort.Strings(descs)
	err := db.Update(func(tx *bolt.Tx) error {
		for _, desc := range descs {
			if err := initDB[desc](tx); err != nil {
				return fmt.Errorf("failed to %s: %w", desc, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Println("initialized store")
	return &dbStore{db}, nil
}

// Close closes the database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
