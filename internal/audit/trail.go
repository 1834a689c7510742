// Package audit implements the append-only governance log.
//
// The in-memory Trail is the contract surface: sequential 1-based ids,
// a per-entry integrity digest, linearizable appends behind a single
// mutex. Durable sinks (JSONL hash chain, SQLite) mirror appends for
// hosts that want persistence; the trail itself never reads them back.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// Entry is one immutable governance event. Never mutated or deleted
// after Append returns it.
type Entry struct {
	ID        int64     `json:"id"`
	Event     string    `json:"event"`
	Payload   Event     `json:"payload"`
	Timestamp time.Time `json:"ts"`
	Digest    string    `json:"digest"`
}

// Trail is the append-only, sequentially numbered audit log.
// Safe for concurrent use; appends are serialized behind one mutex so
// no two entries ever share an id and none are lost.
type Trail struct {
	mu      sync.Mutex
	entries []Entry
	sinks   []Sink
}

// NewTrail creates an empty trail mirrored to the given sinks.
func NewTrail(sinks ...Sink) *Trail {
	return &Trail{sinks: sinks}
}

// Append assigns the next sequential id, stamps the current time,
// computes the integrity digest, and stores the entry. The returned
// error only reports sink mirror failures; the in-memory append itself
// has already happened and cannot fail.
func (t *Trail) Append(event Event) (Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry := Entry{
		ID:        int64(len(t.entries)) + 1,
		Event:     event.Kind(),
		Payload:   event,
		Timestamp: time.Now().UTC(),
	}
	entry.Digest = digest(entry)
	t.entries = append(t.entries, entry)

	var errs []error
	for _, s := range t.sinks {
		if err := s.Record(entry); err != nil {
			errs = append(errs, err)
		}
	}
	return entry, errors.Join(errs...)
}

// ReadAll returns a defensive copy of the trail. Callers cannot mutate
// the log through it.
func (t *Trail) ReadAll() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries. Monotonically non-decreasing.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// digest computes the per-entry integrity digest over the event name,
// id, and marshalled payload. This detects accidental corruption of a
// copy; it is not a tamper-evidence chain — the JSONL sink provides
// chaining for hosts that need it.
func digest(e Entry) string {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		payload = []byte(e.Event)
	}
	h := sha256.New()
	h.Write([]byte(e.Event))
	h.Write([]byte{0})
	var id [8]byte
	for i := 0; i < 8; i++ {
		id[i] = byte(e.ID >> (8 * (7 - i)))
	}
	h.Write(id[:])
	h.Write(payload)
	return "sha256:" + hex.EncodeToString(h.Sum(nil))
}
