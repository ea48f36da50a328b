// Package library maintains an embedded key-value index of restructured
// device records, keyed by device_id. The index command feeds it; other
// tools query it without re-reading the JSON tree.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/boltdb/bolt"

	"github.com/semidata/plexconv-cli/internal/record"
)

var devicesBucket = []byte("devices")

// Library wraps a single-writer bolt database.
type Library struct {
	db *bolt.DB
}

// Open opens or creates the index file and ensures the devices bucket
// exists. The open times out rather than blocking forever on a file lock
// held by another process.
func Open(path string) (*Library, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open device index %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(devicesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Library{db: db}, nil
}

func (l *Library) Close() error { return l.db.Close() }

// Put stores or replaces one record under its device id.
func (l *Library) Put(rec *record.V2Record) error {
	if rec.DeviceID == "" {
		return fmt.Errorf("record has no device_id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(devicesBucket).Put([]byte(rec.DeviceID), data)
	})
}

// Get loads one record by device id. A missing id returns (nil, nil).
func (l *Library) Get(deviceID string) (*record.V2Record, error) {
	var rec *record.V2Record
	err := l.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(devicesBucket).Get([]byte(deviceID))
		if data == nil {
			return nil
		}
		rec = new(record.V2Record)
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", deviceID, err)
	}
	return rec, nil
}

// Entry is the listing view of one indexed device.
type Entry struct {
	DeviceID     string
	Manufacturer string
	PartNumber   string
	Technology   string
	VdsMax       string
}

// List returns all indexed devices sorted by device id.
func (l *Library) List() ([]Entry, error) {
	var entries []Entry
	err := l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(devicesBucket).ForEach(func(k, v []byte) error {
			var rec record.V2Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt entry %s: %w", k, err)
			}
			e := Entry{
				DeviceID:     string(k),
				Manufacturer: rec.Identity.Manufacturer,
				PartNumber:   rec.Identity.PartNumber,
				Technology:   rec.Classification.Technology,
			}
			if rec.Ratings.VdsMax != nil {
				e.VdsMax = fmt.Sprintf("%g %s", rec.Ratings.VdsMax.Value, rec.Ratings.VdsMax.Unit)
			}
			entries = append(entries, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].DeviceID < entries[j].DeviceID })
	return entries, nil
}

// Count reports the number of indexed devices.
func (l *Library) Count() (int, error) {
	n := 0
	err := l.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(devicesBucket).Stats().KeyN
		return nil
	})
	return n, err
}
