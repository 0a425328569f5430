// Package archive keeps serialized spectrogram documents in a local
// key-value store, so repeated analyses can be retained without scattering
// JSON files across the filesystem.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/cwbudde/algo-spectrogram/store"
)

// ErrNotFound is returned by Get for unknown record IDs.
var ErrNotFound = errors.New("archive record not found")

// Store is a badger-backed document archive. It is safe for concurrent
// use by multiple goroutines.
type Store struct {
	db *badger.DB
}

// Open creates or opens an archive rooted at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	return &Store{db: db}, nil
}

// Put stores a document under a fresh record ID and returns the ID.
func (s *Store) Put(doc *store.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	id := uuid.NewString()

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(id), data)
	})
	if err != nil {
		return "", fmt.Errorf("store document %s: %w", id, err)
	}

	return id, nil
}

// Get retrieves a document by record ID.
func (s *Store) Get(id string) (*store.Document, error) {
	var doc store.Document

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", id, err)
	}

	return &doc, nil
}

// IDs lists every record ID in the archive.
func (s *Store) IDs() ([]string, error) {
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, string(it.Item().KeyCopy(nil)))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}

	return ids, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
