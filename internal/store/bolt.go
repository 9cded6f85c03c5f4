package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var factsBucket = []byte(Collection)

type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(factsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating %s bucket: %w", Collection, err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) FindFact(ctx context.Context, key string) (*Fact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var f *Fact
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(factsBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		f = &Fact{}
		return json.Unmarshal(v, f)
	})
	if err != nil {
		return nil, fmt.Errorf("reading fact %q: %w", key, err)
	}
	return f, nil
}

// ListFacts returns every fact ordered by key.
func (s *BoltStore) ListFacts(ctx context.Context) ([]Fact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var facts []Fact
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(factsBucket).ForEach(func(_, v []byte) error {
			var f Fact
			if err := json.Unmarshal(v, &f); err != nil {
				return err
			}
			facts = append(facts, f)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing facts: %w", err)
	}
	sort.Slice(facts, func(i, j int) bool { return facts[i].Key < facts[j].Key })
	return facts, nil
}

func (s *BoltStore) ReplaceAll(ctx context.Context, facts []Fact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(factsBucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return fmt.Errorf("deleting %s bucket: %w", Collection, err)
		}
		b, err := tx.CreateBucket(factsBucket)
		if err != nil {
			return fmt.Errorf("creating %s bucket: %w", Collection, err)
		}
		for _, f := range facts {
			data, err := json.Marshal(f)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(f.Key), data); err != nil {
				return fmt.Errorf("inserting fact %q: %w", f.Key, err)
			}
		}
		return nil
	})
}

func (s *BoltStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(factsBucket) == nil {
			return fmt.Errorf("bucket %s missing", Collection)
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
