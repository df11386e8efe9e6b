// Package store keeps saved numbers in an encrypted zstore collection.
// The store is protected by a master password; nothing is written in the
// clear.
package store

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/zpnr/internal/record"
)

const (
	saltFile          = "salt"
	numbersCollection = "numbers"
)

var (
	// ErrNotFound is returned when no saved number matches an id.
	ErrNotFound = errors.New("number not found")

	// ErrAmbiguous is returned when an id prefix matches several numbers.
	ErrAmbiguous = errors.New("id prefix matches more than one number")
)

// Store manages saved numbers.
type Store struct {
	zs      *zstore.Store
	numbers *zstore.Collection[record.Record]
}

// IsFirstRun reports whether no store has been initialized in dir.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(dir + "/" + saltFile)
	return err != nil
}

// OpenDir opens or creates the store rooted at dir.
func OpenDir(dir string, password []byte) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		zcrypto.Erase(password)
		return nil, fmt.Errorf("open store: create data dir: %w", err)
	}
	return Open(zfilesystem.NewOSFileSystem(dir), password)
}

// Open opens or initializes a store on fsys. The first open sets the
// password; later opens fail if it does not match. password is erased
// before Open returns.
func Open(fsys zfilesystem.ReadWriteFileFS, password []byte) (*Store, error) {
	defer zcrypto.Erase(password)

	zs, err := zstore.Open(fsys, password)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	col, err := zstore.NewCollection[record.Record](zs, numbersCollection)
	if err != nil {
		zs.Close()
		return nil, fmt.Errorf("open store: %s collection: %w", numbersCollection, err)
	}

	return &Store{zs: zs, numbers: col}, nil
}

// Save encrypts and writes a record.
func (s *Store) Save(r record.Record) error {
	if err := s.numbers.Put(r.ID, r); err != nil {
		return fmt.Errorf("save number %s: %w", r.ShortID(), err)
	}
	return nil
}

// List returns all saved records, newest first.
func (s *Store) List() ([]record.Record, error) {
	recs, err := s.numbers.List()
	if err != nil {
		return nil, fmt.Errorf("list numbers: %w", err)
	}

	// zstore does not guarantee order
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs, nil
}

// Get returns the record whose id equals or starts with id.
func (s *Store) Get(id string) (record.Record, error) {
	if id == "" {
		return record.Record{}, ErrNotFound
	}

	recs, err := s.List()
	if err != nil {
		return record.Record{}, err
	}

	var found []record.Record
	for _, r := range recs {
		if r.ID == id {
			return r, nil
		}
		if strings.HasPrefix(r.ID, id) {
			found = append(found, r)
		}
	}

	switch len(found) {
	case 0:
		return record.Record{}, ErrNotFound
	case 1:
		return found[0], nil
	}
	return record.Record{}, fmt.Errorf("%w: %s", ErrAmbiguous, id)
}

// Delete removes the record matching id (or a unique id prefix) and
// returns it.
func (s *Store) Delete(id string) (record.Record, error) {
	r, err := s.Get(id)
	if err != nil {
		return record.Record{}, err
	}

	if err := s.numbers.Delete(r.ID); err != nil {
		return record.Record{}, fmt.Errorf("delete number %s: %w", r.ShortID(), err)
	}
	return r, nil
}

// Close releases the underlying store and its key material.
func (s *Store) Close() error {
	if s.zs == nil {
		return nil
	}
	s.zs.Close()
	s.zs = nil
	return nil
}
