// Package leveldb provides a stayindex.Taxonomy backed by leveldb, as an
// alternative to the boltdb store. Each dimension gets its own pair of
// leveldb instances (ordinal->label and label->ordinal) under the
// taxonomy directory.
package leveldb

import (
	"encoding/binary"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

// Taxonomy is a stayindex.Taxonomy which stores the two-way label/ordinal
// mapping in leveldb.
type Taxonomy struct {
	lock    sync.RWMutex
	dirname string
	dims    map[string]*dimStore
}

type dimStore struct {
	idMap  *leveldb.DB
	valMap *leveldb.DB
	curID  *uint64
}

type errorList []error

func (errs errorList) Error() string {
	strs := make([]string, len(errs))
	for i, err := range errs {
		strs[i] = err.Error()
	}
	return strings.Join(strs, "; ")
}

// NewTaxonomy opens (creating if necessary) a leveldb-backed taxonomy
// under dirname and ensures stores for the given dimensions exist.
func NewTaxonomy(dirname string, dims ...string) (*Taxonomy, error) {
	t := &Taxonomy{
		dirname: dirname,
		dims:    make(map[string]*dimStore),
	}
	for _, dim := range dims {
		if _, err := t.dim(dim); err != nil {
			return nil, errors.Wrapf(err, "opening dimension %v", dim)
		}
	}
	return t, nil
}

func (t *Taxonomy) dim(name string) (*dimStore, error) {
	t.lock.RLock()
	ds, ok := t.dims[name]
	t.lock.RUnlock()
	if ok {
		return ds, nil
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	if ds, ok = t.dims[name]; ok {
		return ds, nil
	}

	idMap, err := leveldb.OpenFile(filepath.Join(t.dirname, name+"-id"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "opening id map")
	}
	valMap, err := leveldb.OpenFile(filepath.Join(t.dirname, name+"-val"), nil)
	if err != nil {
		idMap.Close()
		return nil, errors.Wrap(err, "opening val map")
	}

	// Resume the ordinal sequence from the highest previously assigned id.
	var curID uint64
	iter := idMap.NewIterator(nil, nil)
	if iter.Last() {
		curID = binary.BigEndian.Uint64(iter.Key())
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		idMap.Close()
		valMap.Close()
		return nil, errors.Wrap(err, "scanning existing ordinals")
	}

	ds = &dimStore{idMap: idMap, valMap: valMap, curID: &curID}
	t.dims[name] = ds
	return ds, nil
}

// GetID maps label to its ordinal in dim, assigning the next one on first
// sight.
func (t *Taxonomy) GetID(dim string, label []byte) (uint64, error) {
	ds, err := t.dim(dim)
	if err != nil {
		return 0, errors.Wrapf(err, "opening dimension %v", dim)
	}

	existing, err := ds.valMap.Get(label, nil)
	if err == nil && len(existing) == 8 {
		return binary.BigEndian.Uint64(existing), nil
	}
	if err != nil && err != leveldb.ErrNotFound {
		return 0, errors.Wrap(err, "looking up label")
	}

	id := atomic.AddUint64(ds.curID, 1)
	idBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(idBytes, id)
	if err := ds.idMap.Put(idBytes, label, nil); err != nil {
		return 0, errors.Wrap(err, "putting into id map")
	}
	if err := ds.valMap.Put(label, idBytes, nil); err != nil {
		return 0, errors.Wrap(err, "putting into val map")
	}
	return id, nil
}

// Get returns the label previously mapped to id in dim.
func (t *Taxonomy) Get(dim string, id uint64) ([]byte, error) {
	t.lock.RLock()
	ds, ok := t.dims[dim]
	t.lock.RUnlock()
	if !ok {
		return nil, errors.Errorf("unknown dimension '%v'", dim)
	}
	idBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(idBytes, id)
	label, err := ds.idMap.Get(idBytes, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "no label for ordinal %d in '%v'", id, dim)
	}
	return label, nil
}

// Close closes all of the underlying leveldb instances.
func (t *Taxonomy) Close() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	errs := make(errorList, 0)
	for _, ds := range t.dims {
		if err := ds.idMap.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := ds.valMap.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
