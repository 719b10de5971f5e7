package cart

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

var (
	cartBucket = []byte("cart")
	itemsKey   = []byte("items")
)

// BoltStore persists the cart to a local bbolt file under a single
// process-wide slot. Load and Save never return errors to the caller: a
// broken or missing file simply yields an empty cart.
type BoltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(cartBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cart bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load() []LineItem {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(cartBucket)
		if b == nil {
			return nil
		}
		if v := b.Get(itemsKey); v != nil {
			raw = append(raw, v...)
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("cart: failed to load from local store, starting empty")
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Msg("cart: stored data is corrupt, starting empty")
		return nil
	}
	return items
}

func (s *BoltStore) Save(items []LineItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		log.Error().Err(err).Msg("cart: failed to encode items for local store")
		return
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cartBucket).Put(itemsKey, raw)
	})
	if err != nil {
		log.Error().Err(err).Msg("cart: failed to save to local store")
	}
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
