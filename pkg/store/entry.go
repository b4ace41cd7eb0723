package store

import (
	"encoding/binary"
	"encoding/json"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	. "src.zlang.sh/pkg/store/storedefs"
)

const bucketEntries = "entries"

func init() {
	initDB["initialize history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketEntries))
		return err
	}
}

// NextSeq returns the sequence number the next entry will get.
func (s *dbStore) NextSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEntries))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddEntry adds a new entry to the history, and returns its sequence number.
// A zero Time is replaced with the current time.
func (s *dbStore) AddEntry(e Entry) (int, error) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	value, err := json.Marshal(e)
	if err != nil {
		return 0, err
	}
	var seq uint64
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEntries))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), value)
	})
	return int(seq), err
}

// DelEntry deletes the entry with the given sequence number.
func (s *dbStore) DelEntry(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEntries))
		return b.Delete(marshalSeq(uint64(seq)))
	})
}

// Entry queries the entry with the given sequence number.
func (s *dbStore) Entry(seq int) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEntries))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingEntry
		}
		var err error
		e, err = unmarshalEntry(seq, v)
		return err
	})
	return e, err
}

// Entries returns all entries whose sequence numbers are in [from, upto).
func (s *dbStore) Entries(from, upto int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketEntries)).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			e, err := unmarshalEntry(int(unmarshalSeq(k)), v)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

// PrevEntry finds the last entry before the given sequence number (exclusive)
// whose code has the given prefix.
func (s *dbStore) PrevEntry(upto int, prefix string) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketEntries)).Cursor()

		var v []byte
		k, _ := c.Seek(marshalSeq(uint64(upto)))
		if k == nil { // upto > LAST
			k, v = c.Last()
			if k == nil {
				return ErrNoMatchingEntry
			}
		} else {
			k, v = c.Prev() // upto exists, find the previous one
		}

		for ; k != nil; k, v = c.Prev() {
			candidate, err := unmarshalEntry(int(unmarshalSeq(k)), v)
			if err != nil {
				return err
			}
			if strings.HasPrefix(candidate.Code, prefix) {
				e = candidate
				return nil
			}
		}
		return ErrNoMatchingEntry
	})
	return e, err
}

func unmarshalEntry(seq int, v []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(v, &e); err != nil {
		return Entry{}, err
	}
	e.Seq = seq
	return e, nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
