package custid

import (
	"context"
	"sort"
	"sync"
	"testing"
)

func TestNextSequential(t *testing.T) {
	svc := NewService(NewMemoryRepository("WPAY"))
	ctx := context.Background()

	first, err := svc.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if first != "WPAY0001" {
		t.Fatalf("expected WPAY0001, got %s", first)
	}

	second, err := svc.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if second != "WPAY0002" {
		t.Fatalf("expected WPAY0002, got %s", second)
	}

	prev, _ := Suffix(second)
	for i := 0; i < 50; i++ {
		id, err := svc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		n, err := Suffix(id)
		if err != nil {
			t.Fatalf("suffix %q: %v", id, err)
		}
		if n != prev+1 {
			t.Fatalf("expected suffix %d, got %d (%s)", prev+1, n, id)
		}
		prev = n
	}
}

func TestNextConcurrentNoDuplicates(t *testing.T) {
	svc := NewService(NewMemoryRepository("WPAY"))
	ctx := context.Background()

	const workers = 32
	ids := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := svc.Next(ctx)
			if err != nil {
				t.Errorf("next: %v", err)
				return
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()

	suffixes := make([]int, 0, workers)
	seen := make(map[string]bool, workers)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id issued: %s", id)
		}
		seen[id] = true
		n, err := Suffix(id)
		if err != nil {
			t.Fatalf("suffix %q: %v", id, err)
		}
		suffixes = append(suffixes, int(n))
	}

	// The issued suffixes must be exactly 1..workers: no gaps, no repeats.
	sort.Ints(suffixes)
	for i, n := range suffixes {
		if n != i+1 {
			t.Fatalf("expected dense sequence, position %d holds %d", i, n)
		}
	}
}

func TestNextFailedWriteIssuesNothing(t *testing.T) {
	repo := NewMemoryRepository("WPAY")
	svc := NewService(repo)
	ctx := context.Background()

	SetFailing(repo, true)
	if _, err := svc.Next(ctx); err == nil {
		t.Fatalf("expected failure while repository is failing")
	}

	SetFailing(repo, false)
	id, err := svc.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if id != "WPAY0001" {
		t.Fatalf("counter moved despite failed write: got %s", id)
	}
}
