package audit

import (
	"sync"
	"testing"

	"github.com/truai/governor/internal/model"
)

func testEvent(status TaskStatus) Event {
	return TaskExecution{
		TaskType:  "file_edit",
		Scope:     model.ScopeProject,
		Target:    "readme.md",
		RiskLevel: model.RiskSafe,
		Status:    status,
	}
}

func TestAppendAssignsContiguousIDs(t *testing.T) {
	trail := NewTrail()

	for i := 0; i < 10; i++ {
		entry, err := trail.Append(testEvent(TaskRouted))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if entry.ID != int64(i)+1 {
			t.Fatalf("entry id = %d, want %d", entry.ID, i+1)
		}
		if entry.Digest == "" {
			t.Fatal("entry digest is empty")
		}
	}

	entries := trail.ReadAll()
	if len(entries) != 10 {
		t.Fatalf("len = %d, want 10", len(entries))
	}
	for i, e := range entries {
		if e.ID != int64(i)+1 {
			t.Fatalf("entries[%d].ID = %d, want %d", i, e.ID, i+1)
		}
	}
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	trail := NewTrail()

	const callers = 16
	const perCaller = 50

	var wg sync.WaitGroup
	for c := 0; c < callers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perCaller; i++ {
				if _, err := trail.Append(testEvent(TaskRouted)); err != nil {
					t.Errorf("append: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	entries := trail.ReadAll()
	if len(entries) != callers*perCaller {
		t.Fatalf("len = %d, want %d", len(entries), callers*perCaller)
	}

	// Ids must be exactly 1..N with no gaps, duplicates, or reordering.
	for i, e := range entries {
		if e.ID != int64(i)+1 {
			t.Fatalf("entries[%d].ID = %d, want %d", i, e.ID, i+1)
		}
	}
}

func TestReadAllIsASnapshot(t *testing.T) {
	trail := NewTrail()
	trail.Append(testEvent(TaskRouted))

	snap := trail.ReadAll()
	snap[0].Event = "TAMPERED"

	if got := trail.ReadAll()[0].Event; got != EventTaskExecution {
		t.Fatalf("trail mutated through snapshot: event = %q", got)
	}
}

func TestDigestIsStablePerEntry(t *testing.T) {
	trail := NewTrail()
	a, _ := trail.Append(testEvent(TaskRouted))
	b, _ := trail.Append(testEvent(TaskRouted))

	// Same payload, different id — digests must differ.
	if a.Digest == b.Digest {
		t.Fatal("digests for distinct entries should differ")
	}

	again := trail.ReadAll()[0]
	if digest(again) != a.Digest {
		t.Fatal("recomputed digest does not match stored digest")
	}
}
