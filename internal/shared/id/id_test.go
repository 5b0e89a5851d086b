package id

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
	if id2.Compare(id1) <= 0 {
		t.Error("IDs from one generator should increase")
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	id := gen.GenerateWithPrefix("cat")

	prefix, raw, ok := strings.Cut(id, "_")
	if !ok || prefix != "cat" {
		t.Fatalf("Prefixed ID should have format 'cat_ulid', got: %s", id)
	}
	if !IsValid(raw) {
		t.Errorf("ULID part should be valid: %s", raw)
	}
}

func TestNewCategoryID(t *testing.T) {
	before := time.Now().Truncate(time.Millisecond)
	catID := NewCategoryID()
	after := time.Now()

	if !strings.HasPrefix(catID.String(), "cat_") {
		t.Errorf("CategoryID should start with 'cat_', got: %s", catID)
	}

	ts, err := catID.Time()
	if err != nil {
		t.Fatalf("Failed to read timestamp: %v", err)
	}
	if ts.Before(before) || ts.After(after) {
		t.Errorf("Timestamp %v outside [%v, %v]", ts, before, after)
	}
}

func TestCategoryIDTimeInvalid(t *testing.T) {
	for _, raw := range []string{"", "noprefix", "cat_invalid"} {
		if _, err := CategoryID(raw).Time(); err == nil {
			t.Errorf("Expected error for %q", raw)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(NewGenerator().Generate().String()) {
		t.Error("Generated ULID should be valid")
	}

	invalidIDs := []string{
		"",
		"invalid",
		"1234567890",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzz",
	}
	for _, id := range invalidIDs {
		if IsValid(id) {
			t.Errorf("ID should be invalid: %s", id)
		}
	}
}

func TestConcurrentGeneration(t *testing.T) {
	const workers = 8
	const perWorker = 100

	var mu sync.Mutex
	seen := make(map[CategoryID]bool)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := NewCategoryID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("Expected %d unique IDs, got %d", workers*perWorker, len(seen))
	}
}
