package repos

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/tradermind/backend/internal/apperrors"
	"github.com/tradermind/backend/internal/config"
	"github.com/tradermind/backend/internal/db"
	"github.com/tradermind/backend/internal/logger"
	"github.com/tradermind/backend/internal/types"
)

func newTestRepo(t *testing.T) AnalysisRepo {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	cfg := config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
	}
	dbService, err := db.NewDatabaseService(&cfg, log)
	if err != nil {
		t.Fatalf("NewDatabaseService: %v", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	return NewAnalysisRepo(dbService.DB(), log)
}

func TestInsertGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ctxText := "morning session"
	rec := &types.AnalysisRecord{
		Text:        "I overtraded.",
		Context:     &ctxText,
		Emotions:    []string{"frustration"},
		RulesBroken: []string{"overtrading"},
		Biases:      []string{},
		Advice:      "trade less",
	}
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("id not assigned")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("created_at not stamped")
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != rec.ID || got.Text != rec.Text || got.Advice != rec.Advice {
		t.Fatalf("round-trip mismatch: %+v vs %+v", got, rec)
	}
	if got.Context == nil || *got.Context != ctxText {
		t.Fatalf("context=%v", got.Context)
	}
	if len(got.Emotions) != 1 || got.Emotions[0] != "frustration" {
		t.Fatalf("emotions=%v", got.Emotions)
	}
	if len(got.RulesBroken) != 1 || got.RulesBroken[0] != "overtrading" {
		t.Fatalf("rules_broken=%v", got.RulesBroken)
	}
	if len(got.Biases) != 0 {
		t.Fatalf("biases=%v", got.Biases)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 9999)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListRecentOrderAndLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		rec := &types.AnalysisRecord{
			Text:   fmt.Sprintf("entry %d", i),
			Advice: "advice",
		}
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	out, err := repo.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(out) != 10 {
		t.Fatalf("default limit: got %d, want 10", len(out))
	}

	// An over-cap limit clamps to the cap instead of falling back to the
	// default page size.
	out, err = repo.ListRecent(ctx, 150)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(out) != 15 {
		t.Fatalf("got %d, want 15", len(out))
	}
	for i := 1; i < len(out); i++ {
		prev, cur := out[i-1], out[i]
		if cur.CreatedAt.After(prev.CreatedAt) {
			t.Fatalf("created_at not descending at %d", i)
		}
		if cur.CreatedAt.Equal(prev.CreatedAt) && cur.ID > prev.ID {
			t.Fatalf("id tie-break not descending at %d", i)
		}
	}
}

func TestListRecentEmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	out, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent on empty store: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d records from empty store", len(out))
	}
}

func TestConcurrentInsertIDsUniqueAndOrdered(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const n = 64
	records := make(chan *types.AnalysisRecord, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := &types.AnalysisRecord{
				Text:   fmt.Sprintf("concurrent %d", i),
				Advice: "advice",
			}
			if err := repo.Insert(ctx, rec); err != nil {
				t.Errorf("Insert: %v", err)
				return
			}
			records <- rec
		}(i)
	}
	wg.Wait()
	close(records)

	var all []*types.AnalysisRecord
	seen := map[uint]bool{}
	for rec := range records {
		if seen[rec.ID] {
			t.Fatalf("duplicate id %d", rec.ID)
		}
		seen[rec.ID] = true
		all = append(all, rec)
	}
	if len(all) != n {
		t.Fatalf("got %d records, want %d", len(all), n)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if cur.CreatedAt.Before(prev.CreatedAt) {
			t.Fatalf("created_at regressed: id %d at %v < id %d at %v",
				cur.ID, cur.CreatedAt, prev.ID, prev.CreatedAt)
		}
	}
}
