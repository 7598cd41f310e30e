package history

import (
	"fmt"
	"testing"
	"time"

	"passport-extractor/internal/model"
)

func makeResult(id string) model.ExtractionResult {
	return model.ExtractionResult{
		ID:             id,
		SourceFilename: id + ".pdf",
		Timestamp:      time.Now(),
		Fields:         map[string]string{"surname": "MARTIN"},
		FieldOrder:     []string{"surname"},
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	store := NewStore()
	for i := 0; i < 5; i++ {
		store.Append("s1", makeResult(fmt.Sprintf("r%d", i)))
	}

	entries := store.List("s1")
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}
	for i, entry := range entries {
		if want := fmt.Sprintf("r%d", i); entry.ID != want {
			t.Errorf("entry %d id = %q, want %q", i, entry.ID, want)
		}
	}
}

func TestLenGrowsByOnePerAppend(t *testing.T) {
	store := NewStore()
	for i := 1; i <= 3; i++ {
		store.Append("s1", makeResult(fmt.Sprintf("r%d", i)))
		if got := store.Len("s1"); got != i {
			t.Fatalf("after %d appends Len = %d", i, got)
		}
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := NewStore()
	store.Append("s1", makeResult("r1"))

	if got := store.Len("s2"); got != 0 {
		t.Errorf("other session Len = %d, want 0", got)
	}
	if _, ok := store.Get("s2", "r1"); ok {
		t.Error("entry leaked into another session")
	}
}

func TestGet(t *testing.T) {
	store := NewStore()
	store.Append("s1", makeResult("r1"))

	entry, ok := store.Get("s1", "r1")
	if !ok || entry.SourceFilename != "r1.pdf" {
		t.Fatalf("Get returned %+v, ok=%v", entry, ok)
	}
	if _, ok := store.Get("s1", "missing"); ok {
		t.Error("Get found a nonexistent entry")
	}
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.Append("s1", makeResult("r1"))
	store.Append("s2", makeResult("r2"))

	store.Clear("s1")
	if got := store.Len("s1"); got != 0 {
		t.Errorf("cleared session Len = %d, want 0", got)
	}
	if got := store.Len("s2"); got != 1 {
		t.Errorf("untouched session Len = %d, want 1", got)
	}
}

func TestListReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Append("s1", makeResult("r1"))

	entries := store.List("s1")
	entries[0].ID = "mutated"

	entry, _ := store.Get("s1", "r1")
	if entry.ID != "r1" {
		t.Error("mutating the listed slice changed stored state")
	}
}
