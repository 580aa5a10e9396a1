package store

import (
	"bytes"
	"encoding/binary"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/timetrackerpro/timetracker/tracker"
)

const (
	schemaKey     = "schema_version"
	schemaVersion = 1
)

type rekey struct {
	old, new []byte
	value    []byte
}

// migrateSessions rewrites every session whose key does not match the
// current key layout. Records that cannot be decoded are left in place;
// LoadSessions skips them. Running it twice is a no-op.
func migrateSessions(tx *bolt.Tx) error {
	bucket := tx.Bucket([]byte(sessionBucket))

	var pending []rekey

	err := bucket.ForEach(func(k, v []byte) error {
		var s tracker.Session

		if err := json.Unmarshal(v, &s); err != nil {
			return nil
		}

		newKey := sessionKey(&s)
		if bytes.Equal(k, newKey) {
			return nil
		}

		pending = append(pending, rekey{
			old:   bytes.Clone(k),
			new:   newKey,
			value: bytes.Clone(v),
		})

		return nil
	})
	if err != nil {
		return err
	}

	for _, r := range pending {
		if err := bucket.Delete(r.old); err != nil {
			return err
		}

		if err := bucket.Put(r.new, r.value); err != nil {
			return err
		}
	}

	return nil
}

func readSchemaVersion(tx *bolt.Tx) uint64 {
	v := tx.Bucket([]byte(metaBucket)).Get([]byte(schemaKey))
	if len(v) != 8 {
		return 0
	}

	return binary.BigEndian.Uint64(v)
}

func writeSchemaVersion(tx *bolt.Tx, version uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, version)

	return tx.Bucket([]byte(metaBucket)).Put([]byte(schemaKey), buf)
}

func (c *Client) migrate(tx *bolt.Tx) error {
	if readSchemaVersion(tx) >= schemaVersion {
		return nil
	}

	err := migrateSessions(tx)
	if err != nil {
		return err
	}

	return writeSchemaVersion(tx, schemaVersion)
}
