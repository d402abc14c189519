// Package boltdb provides a stayindex.Taxonomy backed by boltdb. Each
// facet dimension gets a pair of nested buckets holding the two-way
// label/ordinal mapping; ordinals come from the bucket sequence so they
// are monotonic per dimension and stable across runs.
package boltdb

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var (
	idBucket  = []byte("idKey")
	valBucket = []byte("valKey")
)

// Taxonomy is a stayindex.Taxonomy which stores the two-way label/ordinal
// mapping in boltdb.
type Taxonomy struct {
	Db   *bolt.DB
	dmu  sync.RWMutex
	dims map[string]struct{}
}

// NewTaxonomy opens (creating if necessary) a bolt-backed taxonomy at
// filename and ensures buckets for the given dimensions exist. Unknown
// dimensions are added lazily by GetID.
func NewTaxonomy(filename string, dims ...string) (*Taxonomy, error) {
	t := &Taxonomy{dims: make(map[string]struct{})}
	var err error
	t.Db, err = bolt.Open(filename, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening db file '%v'", filename)
	}
	err = t.Db.Update(func(tx *bolt.Tx) error {
		ib, err := tx.CreateBucketIfNotExists(idBucket)
		if err != nil {
			return errors.Wrap(err, "creating idKey bucket")
		}
		vb, err := tx.CreateBucketIfNotExists(valBucket)
		if err != nil {
			return errors.Wrap(err, "creating valKey bucket")
		}
		for _, dim := range dims {
			if _, _, err = t.addDim(ib, vb, dim); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "ensuring bucket existence")
	}
	return t, nil
}

func (t *Taxonomy) addDim(ib, vb *bolt.Bucket, dim string) (dib, dvb *bolt.Bucket, err error) {
	dib, err = ib.CreateBucketIfNotExists([]byte(dim))
	if err != nil {
		return nil, nil, errors.Wrap(err, "adding "+dim+" to id bucket")
	}
	dvb, err = vb.CreateBucketIfNotExists([]byte(dim))
	if err != nil {
		return nil, nil, errors.Wrap(err, "adding "+dim+" to val bucket")
	}
	t.dmu.Lock()
	t.dims[dim] = struct{}{}
	t.dmu.Unlock()
	return dib, dvb, nil
}

// GetID maps label to its ordinal in dim, assigning the next sequence
// value on first sight.
func (t *Taxonomy) GetID(dim string, label []byte) (id uint64, err error) {
	t.dmu.RLock()
	_, ok := t.dims[dim]
	t.dmu.RUnlock()
	if !ok {
		err = t.Db.Update(func(tx *bolt.Tx) error {
			_, _, err := t.addDim(tx.Bucket(idBucket), tx.Bucket(valBucket), dim)
			return err
		})
		if err != nil {
			return 0, errors.Wrap(err, "adding dimension in GetID")
		}
	}

	// Bolt values are only valid inside their transaction, so copy out.
	var existing []byte
	err = t.Db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(valBucket).Bucket([]byte(dim)).Get(label); v != nil {
			existing = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "looking up label")
	}
	if len(existing) == 8 {
		return binary.BigEndian.Uint64(existing), nil
	}

	err = t.Db.Update(func(tx *bolt.Tx) error {
		dib := tx.Bucket(idBucket).Bucket([]byte(dim))
		dvb := tx.Bucket(valBucket).Bucket([]byte(dim))

		id, err = dib.NextSequence()
		if err != nil {
			return err
		}
		keyBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(keyBytes, id)
		if err = dib.Put(keyBytes, label); err != nil {
			return errors.Wrap(err, "inserting into idKey bucket")
		}
		if err = dvb.Put(label, keyBytes); err != nil {
			return errors.Wrap(err, "inserting into valKey bucket")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns the label previously mapped to id in dim.
func (t *Taxonomy) Get(dim string, id uint64) (label []byte, err error) {
	t.dmu.RLock()
	_, ok := t.dims[dim]
	t.dmu.RUnlock()
	if !ok {
		return nil, errors.Errorf("unknown dimension '%v'", dim)
	}
	err = t.Db.View(func(tx *bolt.Tx) error {
		idBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(idBytes, id)
		if v := tx.Bucket(idBucket).Bucket([]byte(dim)).Get(idBytes); v != nil {
			label = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, errors.Errorf("no label for ordinal %d in '%v'", id, dim)
	}
	return label, nil
}

// Close syncs and closes the underlying boltdb.
func (t *Taxonomy) Close() error {
	if err := t.Db.Sync(); err != nil {
		return errors.Wrap(err, "syncing db")
	}
	return t.Db.Close()
}
