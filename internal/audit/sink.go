package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Sink mirrors trail appends to durable storage. Sinks observe
// entries; they never feed back into the in-memory trail.
type Sink interface {
	Record(Entry) error
	Close() error
}

// GenesisHash is the prev_hash for the first line in a new JSONL sink.
const GenesisHash = "sha256:0000000000000000000000000000000000000000000000000000000000000000"

// chainedLine is the on-disk JSONL shape. All fields are structs or
// scalars (no map[string]any) so json.Marshal field order is
// deterministic and the hash chain reproducible.
type chainedLine struct {
	ID        int64           `json:"id"`
	Timestamp string          `json:"ts"`
	Event     string          `json:"event"`
	Payload   json.RawMessage `json:"payload"`
	Digest    string          `json:"digest"`
	PrevHash  string          `json:"prev_hash"`
}

// JSONLSink is an append-only JSONL file with SHA-256 hash chaining.
// Each line's prev_hash is the hash of the previous line, forming a
// tamper-evident chain on disk.
type JSONLSink struct {
	mu       sync.Mutex
	file     *os.File
	prevHash string
}

// OpenJSONL opens (or creates) a chained JSONL sink for appending.
// If the file already exists, the last line is read back to recover
// the chain tail.
func OpenJSONL(path string) (*JSONLSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("audit: create directory: %w", err)
	}

	prevHash := GenesisHash
	if last, err := lastLine(path); err != nil {
		return nil, err
	} else if len(last) > 0 {
		prevHash = HashLine(last)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("audit: open file: %w", err)
	}
	return &JSONLSink{file: f, prevHash: prevHash}, nil
}

// Record appends one chained line and syncs to disk.
func (s *JSONLSink) Record(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("audit: marshal payload: %w", err)
	}

	line, err := json.Marshal(chainedLine{
		ID:        entry.ID,
		Timestamp: entry.Timestamp.Format(TimestampFormat),
		Event:     entry.Event,
		Payload:   payload,
		Digest:    entry.Digest,
		PrevHash:  s.prevHash,
	})
	if err != nil {
		return fmt.Errorf("audit: marshal line: %w", err)
	}

	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("audit: write entry: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("audit: sync: %w", err)
	}

	s.prevHash = HashLine(line)
	return nil
}

// Close flushes and closes the underlying file.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// TimestampFormat is the wire format for sink timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// HashLine returns "sha256:<hex>" of the given bytes.
func HashLine(line []byte) string {
	h := sha256.Sum256(line)
	return "sha256:" + hex.EncodeToString(h[:])
}

func lastLine(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audit: read existing log: %w", err)
	}
	var last []byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				last = data[start:i]
			}
			start = i + 1
		}
	}
	if start < len(data) {
		last = data[start:]
	}
	return last, nil
}
