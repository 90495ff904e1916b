// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package spell

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/tidwall/buntdb"
)

var (
	// ErrLockHeld is returned when another process has the personal dictionary open.
	ErrLockHeld = errors.New("personal dictionary is locked (is another ircmark running?)")
)

const keyPersonalPrefix = "personal.%s."

// PersonalStore persists personal-dictionary words per language tag.
type PersonalStore interface {
	Words(tag string) ([]string, error)
	Add(tag, word string) error
	Close() error
}

// BuntStore is a PersonalStore in a buntdb file, protected by a lock file so
// that two clients don't write the same database.
type BuntStore struct {
	db   *buntdb.DB
	lock *flock.Flock
}

// OpenPersonalStore opens (creating if needed) the store at path. An empty
// path gives a store that lives only in memory.
func OpenPersonalStore(path string) (*BuntStore, error) {
	if path == "" {
		db, err := buntdb.Open(":memory:")
		if err != nil {
			return nil, err
		}
		return &BuntStore{db: db}, nil
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking personal dictionary: %w", err)
	} else if !locked {
		return nil, ErrLockHeld
	}

	db, err := buntdb.Open(path)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("opening personal dictionary %s: %w", path, err)
	}
	return &BuntStore{db: db, lock: lock}, nil
}

func personalKey(tag, word string) string {
	return fmt.Sprintf(keyPersonalPrefix, tag) + word
}

// Words returns the words stored for tag.
func (s *BuntStore) Words(tag string) (result []string, err error) {
	err = s.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(fmt.Sprintf(keyPersonalPrefix, tag)+"*", func(key, value string) bool {
			result = append(result, key[len(fmt.Sprintf(keyPersonalPrefix, tag)):])
			return true
		})
	})
	return
}

// Add stores word for tag; the value records when it was added.
func (s *BuntStore) Add(tag, word string) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(personalKey(tag, word), time.Now().UTC().Format(time.RFC3339), nil)
		return err
	})
}

// Close closes the database and releases the lock.
func (s *BuntStore) Close() error {
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}
