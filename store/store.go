// Package store persists user dictionary changes in badger so that they
// survive server restarts.
package store

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/teatak/fenci/dictionary"
)

var (
	prefixWord    = []byte("w/")
	prefixRemoved = []byte("r/")
)

// Store records added and removed words.
type Store struct {
	db *badger.DB
}

// Open opens the store in dir, creating it if needed. An empty dir keeps
// everything in memory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put records e as added, replacing any earlier record for the word.
func (s *Store) Put(e dictionary.Entry) error {
	value := strconv.FormatInt(e.Freq, 10)
	if e.Tag != "" {
		value += " " + e.Tag
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key(prefixRemoved, e.Word)); err != nil {
			return err
		}
		return txn.Set(key(prefixWord, e.Word), []byte(value))
	})
}

// Remove records word as removed.
func (s *Store) Remove(word string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key(prefixWord, word)); err != nil {
			return err
		}
		return txn.Set(key(prefixRemoved, word), nil)
	})
}

// Clear drops every record.
func (s *Store) Clear() error {
	var keys [][]byte
	for _, prefix := range [][]byte{prefixWord, prefixRemoved} {
		err := s.scan(prefix, func(word string, _ []byte) error {
			keys = append(keys, key(prefix, word))
			return nil
		})
		if err != nil {
			return err
		}
	}

	wb := s.db.NewWriteBatch()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			wb.Cancel()
			return err
		}
	}
	return wb.Flush()
}

// Entries returns the added words in key order.
func (s *Store) Entries() ([]dictionary.Entry, error) {
	var entries []dictionary.Entry
	err := s.scan(prefixWord, func(word string, value []byte) error {
		freqStr, tag, _ := strings.Cut(string(value), " ")
		freq, err := strconv.ParseInt(freqStr, 10, 64)
		if err != nil {
			return fmt.Errorf("store: bad record for %q: %w", word, err)
		}
		entries = append(entries, dictionary.Entry{Word: word, Freq: freq, Tag: tag})
		return nil
	})
	return entries, err
}

// Removed returns the removed words in key order.
func (s *Store) Removed() ([]string, error) {
	var words []string
	err := s.scan(prefixRemoved, func(word string, _ []byte) error {
		words = append(words, word)
		return nil
	})
	return words, err
}

// Dictionary renders the added words in the dictionary text format.
func (s *Store) Dictionary() ([]byte, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(e.Word)
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatInt(e.Freq, 10))
		if e.Tag != "" {
			buf.WriteByte(' ')
			buf.WriteString(e.Tag)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func (s *Store) scan(prefix []byte, fn func(word string, value []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(string(item.Key()[len(prefix):]), value); err != nil {
				return err
			}
		}
		return nil
	})
}

func key(prefix []byte, word string) []byte {
	return append(append([]byte{}, prefix...), word...)
}
