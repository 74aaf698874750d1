package sqlite_test

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/example/taysr/internal/adapters/sqlite"
	"github.com/example/taysr/internal/db"
)

func TestCounterRepository_IncrementAndFetch(t *testing.T) {
	repo := sqlite.NewCounterRepository(setupTestDB(t))
	ctx := context.Background()

	// First reservation yields 1; subsequent ones are strictly increasing.
	for want := 1; want <= 5; want++ {
		got, err := repo.IncrementAndFetch(ctx, "guild-1")
		if err != nil {
			t.Fatalf("IncrementAndFetch failed: %v", err)
		}
		if got != want {
			t.Errorf("IncrementAndFetch = %d, want %d", got, want)
		}
	}
}

func TestCounterRepository_GuildsAreIndependent(t *testing.T) {
	repo := sqlite.NewCounterRepository(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.IncrementAndFetch(ctx, "guild-1"); err != nil {
		t.Fatalf("IncrementAndFetch failed: %v", err)
	}
	if _, err := repo.IncrementAndFetch(ctx, "guild-1"); err != nil {
		t.Fatalf("IncrementAndFetch failed: %v", err)
	}

	got, err := repo.IncrementAndFetch(ctx, "guild-2")
	if err != nil {
		t.Fatalf("IncrementAndFetch failed: %v", err)
	}
	if got != 1 {
		t.Errorf("fresh guild counter = %d, want 1", got)
	}
}

func TestCounterRepository_ConcurrentReservationsAreDistinct(t *testing.T) {
	// Use a file-backed database: each goroutine gets its own connection
	// and the increments must still serialize on the row.
	path := filepath.Join(t.TempDir(), "counters.db")
	fileDB, err := db.Open(path)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { fileDB.Close() })

	repo := sqlite.NewCounterRepository(fileDB)
	ctx := context.Background()

	const n = 20
	results := make([]int, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.IncrementAndFetch(ctx, "guild-1")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("reservation %d failed: %v", i, err)
		}
	}

	// N reservations from sequence 0 must yield exactly {1..N}.
	sort.Ints(results)
	for i, got := range results {
		if got != i+1 {
			t.Fatalf("reservations = %v, want 1..%d", results, n)
		}
	}
}

func TestCounterRepository_GetAndSet(t *testing.T) {
	repo := sqlite.NewCounterRepository(setupTestDB(t))
	ctx := context.Background()

	got, err := repo.Get(ctx, "guild-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 0 {
		t.Errorf("absent counter Get = %d, want 0", got)
	}

	if err := repo.Set(ctx, "guild-1", 42); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err = repo.Get(ctx, "guild-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 42 {
		t.Errorf("Get after Set = %d, want 42", got)
	}

	// Set on an existing counter overwrites.
	if err := repo.Set(ctx, "guild-1", 7); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, _ = repo.Get(ctx, "guild-1")
	if got != 7 {
		t.Errorf("Get after second Set = %d, want 7", got)
	}

	next, err := repo.IncrementAndFetch(ctx, "guild-1")
	if err != nil {
		t.Fatalf("IncrementAndFetch failed: %v", err)
	}
	if next != 8 {
		t.Errorf("IncrementAndFetch after Set = %d, want 8", next)
	}
}

func TestCounterRepository_List(t *testing.T) {
	repo := sqlite.NewCounterRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Set(ctx, "guild-b", 2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Set(ctx, "guild-a", 1); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	counters, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(counters) != 2 {
		t.Fatalf("expected 2 counters, got %d", len(counters))
	}
	if counters[0].GuildID != "guild-a" || counters[0].Sequence != 1 {
		t.Errorf("unexpected first counter: %+v", counters[0])
	}
}
