package database

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bloops-games/quiz/internal/cache"
	"github.com/bloops-games/quiz/internal/database"
	"github.com/bloops-games/quiz/internal/database/question/model"
	bolt "go.etcd.io/bbolt"
)

const bucket = "questions"

var ErrNotFound = fmt.Errorf("not found")

func New(db *database.DB, cache cache.Cache[string, model.Question]) *DB {
	return &DB{sDB: db, cache: cache}
}

// DB is the question repository. Values are JSON documents keyed by
// question id.
type DB struct {
	sDB *database.DB

	cache cache.Cache[string, model.Question]
}

type fetchFn func(key string) ([]byte, error)

func (db *DB) cachedValue(key string, fn fetchFn) (model.Question, error) {
	if db.cache != nil {
		v, ok := db.cache.Get(key)
		if ok {
			return v, nil
		}
	}

	var q model.Question
	bytes, err := fn(key)
	if err != nil {
		return q, fmt.Errorf("fetch: %w", err)
	}

	if len(bytes) == 0 {
		return q, ErrNotFound
	}

	if err := json.Unmarshal(bytes, &q); err != nil {
		return q, fmt.Errorf("unmarshal: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(key, q)
	}

	return q, nil
}

func (db *DB) FetchAll() ([]model.Question, error) {
	list := make([]model.Question, 0)

	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			var q model.Question
			if err := json.Unmarshal(v, &q); err != nil {
				return fmt.Errorf("json unmarshal %s: %w", k, err)
			}
			list = append(list, q)
			return nil
		})
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	return list, nil
}

func (db *DB) Fetch(id string) (model.Question, error) {
	q, err := db.cachedValue(id, func(key string) ([]byte, error) {
		var bytes []byte

		if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
			b := tx.Bucket([]byte(bucket))
			if b == nil {
				return nil
			}
			if v := b.Get([]byte(key)); v != nil {
				bytes = make([]byte, len(v))
				copy(bytes, v)
			}
			return nil
		}); err != nil {
			return nil, fmt.Errorf("view transaction error: %w", err)
		}

		return bytes, nil
	})

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return q, ErrNotFound
		}
		return q, fmt.Errorf("cached value: %w", err)
	}

	return q, nil
}

// Store inserts or replaces a question.
func (db *DB) Store(q model.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}

	bytes, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		if err := b.Put([]byte(q.ID), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(q.ID, q)
	}

	return nil
}

// Delete reports whether a question with the id existed.
func (db *DB) Delete(id string) (bool, error) {
	var deleted bool

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil || b.Get([]byte(id)) == nil {
			return nil
		}

		deleted = true
		return b.Delete([]byte(id))
	}); err != nil {
		return false, fmt.Errorf("update transaction error: %w", err)
	}

	if db.cache != nil {
		db.cache.Delete(id)
	}

	return deleted, nil
}

// SeedIfEmpty replaces the stored questions with items when the store is
// empty or force is set. It reports whether anything was written.
func (db *DB) SeedIfEmpty(items []model.Question, force bool) (bool, error) {
	for _, q := range items {
		if err := q.Validate(); err != nil {
			return false, fmt.Errorf("seed item %s: %w", q.ID, err)
		}
	}

	var seeded bool
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(bucket)); b != nil {
			if k, _ := b.Cursor().First(); !force && k != nil {
				return nil
			}

			if err := tx.DeleteBucket([]byte(bucket)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return fmt.Errorf("delete bucket: %w", err)
			}
		}

		b, err := tx.CreateBucket([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		for _, q := range items {
			bytes, err := json.Marshal(q)
			if err != nil {
				return fmt.Errorf("marshal: %w", err)
			}
			if err := b.Put([]byte(q.ID), bytes); err != nil {
				return fmt.Errorf("put to bucket error: %w", err)
			}
		}

		seeded = true
		return nil
	}); err != nil {
		return false, fmt.Errorf("update transaction error: %w", err)
	}

	if seeded && db.cache != nil {
		db.cache.Purge()
	}

	return seeded, nil
}
