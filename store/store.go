// Package store connects to the data store and persists sessions, category
// totals and sent notifications
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"
	bolterrors "go.etcd.io/bbolt/errors"

	"github.com/timetrackerpro/timetracker/internal/apperr"
	"github.com/timetrackerpro/timetracker/internal/osutil"
	"github.com/timetrackerpro/timetracker/tracker"
)

const (
	sessionBucket     = "sessions"
	accumulatorBucket = "accumulators"
	noticeBucket      = "notices"
	metaBucket        = "meta"

	accumulatorKey = "totals"

	// keyLayout is a fixed width RFC 3339 layout so that keys sort in
	// chronological order.
	keyLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrAlreadyRunning is returned when another process holds the database.
var ErrAlreadyRunning = &apperr.Error{
	Message: "is timetracker already running? Only one instance can be active at a time",
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// sessionKey derives the database key of a session from its start time and
// id. Keys are ordered chronologically.
func sessionKey(s *tracker.Session) []byte {
	return []byte(s.StartTime.UTC().Format(keyLayout) + "/" + s.ID)
}

// NewClient opens the database at dbPath, creating the buckets if needed.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath, time.Second)
	if err != nil {
		return nil, err
	}

	c := &Client{db}

	err = c.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{
			sessionBucket,
			accumulatorBucket,
			noticeBucket,
			metaBucket,
		} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return c.migrate(tx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}

// openDB creates or opens a database and locks it.
func openDB(dbPath string, timeout time.Duration) (*bolt.DB, error) {
	db, err := bolt.Open(
		dbPath,
		osutil.FilePermission,
		&bolt.Options{Timeout: timeout},
	)
	if err != nil {
		// a file lock held by another process surfaces as a timeout
		if errors.Is(err, bolterrors.ErrTimeout) {
			return nil, ErrAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// InUse reports whether another process currently holds the database at
// dbPath.
func InUse(dbPath string) bool {
	db, err := openDB(dbPath, 100*time.Millisecond)
	if err != nil {
		return errors.Is(err, ErrAlreadyRunning)
	}

	_ = db.Close()

	return false
}

// LoadSessions returns every stored session, newest first. Records that
// cannot be decoded are skipped.
func (c *Client) LoadSessions() ([]tracker.Session, error) {
	var sessions []tracker.Session

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()

		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			var s tracker.Session
			if err := json.Unmarshal(v, &s); err != nil {
				continue
			}

			sessions = append(sessions, s)
		}

		return nil
	})

	return sessions, err
}

// GetSessions returns the sessions that started within [start, end),
// oldest first. A zero bound leaves that side of the range open. Records
// that cannot be decoded are skipped.
func (c *Client) GetSessions(start, end time.Time) ([]tracker.Session, error) {
	var sessions []tracker.Session

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()

		var k, v []byte
		if start.IsZero() {
			k, v = cur.First()
		} else {
			k, v = cur.Seek([]byte(start.UTC().Format(keyLayout)))
		}

		var maxKey []byte
		if !end.IsZero() {
			maxKey = []byte(end.UTC().Format(keyLayout))
		}

		for ; k != nil; k, v = cur.Next() {
			if maxKey != nil && bytes.Compare(k, maxKey) >= 0 {
				break
			}

			var s tracker.Session
			if err := json.Unmarshal(v, &s); err != nil {
				continue
			}

			sessions = append(sessions, s)
		}

		return nil
	})

	return sessions, err
}

// Window restricts the sessions loaded through the client to those that
// started within [start, end). Writes and deletes go to the client.
type Window struct {
	*Client
	start, end time.Time
}

// Window returns a view of the sessions that started within [start, end).
// A zero bound leaves that side open.
func (c *Client) Window(start, end time.Time) *Window {
	return &Window{Client: c, start: start, end: end}
}

// LoadSessions reads only the sessions inside the window, using a cursor
// range over the chronological keys.
func (w *Window) LoadSessions() ([]tracker.Session, error) {
	return w.GetSessions(w.start, w.end)
}

// SaveSession creates or overwrites a session.
func (c *Client) SaveSession(sess *tracker.Session) error {
	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put(sessionKey(sess), value)
	})
}

// DeleteSessions deletes one or more saved sessions.
func (c *Client) DeleteSessions(sessions []tracker.Session) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		for i := range sessions {
			if err := b.Delete(sessionKey(&sessions[i])); err != nil {
				return err
			}
		}

		return nil
	})
}

// LoadAccumulators returns the saved category totals. A fresh database has
// all totals at zero.
func (c *Client) LoadAccumulators() (tracker.Accumulators, error) {
	var acc tracker.Accumulators

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(accumulatorBucket)).Get([]byte(accumulatorKey))
		if len(v) == 0 {
			return nil
		}

		return json.Unmarshal(v, &acc)
	})

	return acc, err
}

// SaveAccumulators overwrites the saved category totals.
func (c *Client) SaveAccumulators(acc tracker.Accumulators) error {
	value, err := json.Marshal(acc)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(accumulatorBucket)).Put([]byte(accumulatorKey), value)
	})
}

// NoticeSent reports whether the notice identified by key was recorded.
func (c *Client) NoticeSent(key string) (bool, error) {
	var sent bool

	err := c.View(func(tx *bolt.Tx) error {
		sent = tx.Bucket([]byte(noticeBucket)).Get([]byte(key)) != nil
		return nil
	})

	return sent, err
}

// MarkNoticeSent records the notice identified by key.
func (c *Client) MarkNoticeSent(key string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(noticeBucket)).Put(
			[]byte(key),
			[]byte(time.Now().Format(time.RFC3339)),
		)
	})
}
