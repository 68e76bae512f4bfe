package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Reset(context.Background())
		s.Close()
	})
	return s
}

// backends runs fn against every backend available in this environment.
func backends(t *testing.T, fn func(t *testing.T, s *Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemory()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, openTestStore(t)) })
	if addr := os.Getenv("UPSKILL_TEST_REDIS_ADDR"); addr != "" {
		t.Run("redis", func(t *testing.T) {
			s, err := OpenRedis(context.Background(), RedisOptions{
				Addr:   addr,
				Prefix: fmt.Sprintf("upskill-test-%d", time.Now().UnixNano()),
			})
			if err != nil {
				t.Fatalf("open redis: %v", err)
			}
			t.Cleanup(func() {
				_ = s.Reset(context.Background())
				s.Close()
			})
			fn(t, s)
		})
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.KV().(*sqliteKV).db

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)
	db := s.KV().(*sqliteKV).db

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, bucketTable).Scan(&name)
	if err != nil {
		t.Fatalf("buckets table missing: %v", err)
	}
}

func TestSQLiteFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upskill.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.UserRepo().Save(ctx, &User{ID: "u1", Email: "a@example.com"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	u, err := s.UserRepo().ByID(ctx, "u1")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if u == nil || u.Email != "a@example.com" {
		t.Fatalf("user after reopen = %+v", u)
	}
}

func TestKVLoadMissingIsNil(t *testing.T) {
	backends(t, func(t *testing.T, s *Store) {
		data, err := s.KV().Load(context.Background(), "nope")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if data != nil {
			t.Fatalf("expected nil, got %q", data)
		}
	})
}

func TestKVSaveOverwrites(t *testing.T) {
	backends(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		kv := s.KV()
		if err := kv.Save(ctx, BucketUsers, []byte(`[1]`)); err != nil {
			t.Fatal(err)
		}
		if err := kv.Save(ctx, BucketUsers, []byte(`[2]`)); err != nil {
			t.Fatal(err)
		}
		got, err := kv.Load(ctx, BucketUsers)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != `[2]` {
			t.Errorf("got %q, want [2]", got)
		}
		if err := kv.Delete(ctx, BucketUsers); err != nil {
			t.Fatal(err)
		}
		got, _ = kv.Load(ctx, BucketUsers)
		if got != nil {
			t.Errorf("expected nil after delete, got %q", got)
		}
	})
}

func TestUpsertReplacesByID(t *testing.T) {
	backends(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		repo := s.UserRepo()

		for _, u := range []User{
			{ID: "u1", Name: "Ada"},
			{ID: "u2", Name: "Grace"},
			{ID: "u1", Name: "Ada Lovelace"},
		} {
			if err := repo.Save(ctx, &u); err != nil {
				t.Fatalf("save: %v", err)
			}
		}

		all, err := repo.All(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 2 {
			t.Fatalf("len = %d, want 2", len(all))
		}
		if all[0].Name != "Ada Lovelace" {
			t.Errorf("first user = %q, want updated in place", all[0].Name)
		}
	})
}

func TestUserByEmailCaseInsensitive(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	_ = s.UserRepo().Save(ctx, &User{ID: "u1", Email: "Ada@Example.com"})

	u, err := s.UserRepo().ByEmail(ctx, " ada@example.COM ")
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.ID != "u1" {
		t.Fatalf("ByEmail = %+v", u)
	}

	u, _ = s.UserRepo().ByEmail(ctx, "nobody@example.com")
	if u != nil {
		t.Fatalf("expected nil for unknown email, got %+v", u)
	}
}

func TestCorruptBucketReturnsError(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	_ = s.KV().Save(ctx, BucketCourses, []byte("{not json"))

	if _, err := s.CourseRepo().All(ctx); err == nil {
		t.Fatal("expected decode error")
	}
	// The bad value is left as-is.
	got, _ := s.KV().Load(ctx, BucketCourses)
	if string(got) != "{not json" {
		t.Errorf("bucket was modified: %q", got)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	backends(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		repo := s.CourseRepo()

		seeded, err := repo.SeedIfEmpty(ctx, []Course{{ID: "c1", Title: "Go"}})
		if err != nil || !seeded {
			t.Fatalf("first seed = %v, %v", seeded, err)
		}

		edited := Course{ID: "c1", Title: "Go (edited)"}
		if err := repo.Save(ctx, &edited); err != nil {
			t.Fatal(err)
		}

		seeded, err = repo.SeedIfEmpty(ctx, []Course{{ID: "c1", Title: "Go"}, {ID: "c2"}})
		if err != nil || seeded {
			t.Fatalf("second seed = %v, %v", seeded, err)
		}

		all, _ := repo.All(ctx)
		if len(all) != 1 || all[0].Title != "Go (edited)" {
			t.Fatalf("reseed overwrote data: %+v", all)
		}
	})
}

func TestActivityMostRecentFirst(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	repo := s.ActivityRepo()

	for i := 1; i <= 4; i++ {
		a := Activity{ID: fmt.Sprint(i), UserID: "u1", Kind: ActivityLessonCompleted}
		if err := repo.Append(ctx, &a); err != nil {
			t.Fatal(err)
		}
	}
	_ = repo.Append(ctx, &Activity{ID: "other", UserID: "u2"})

	got, err := repo.ByUser(ctx, "u1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"4", "3", "2"} {
		if got[i].ID != want {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestEmailInboxNewestFirst(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	now := time.Now()
	_ = s.EmailRepo().Save(ctx, &Email{ID: "old", UserID: "u1", SentAt: now.Add(-time.Hour)})
	_ = s.EmailRepo().Save(ctx, &Email{ID: "new", UserID: "u1", SentAt: now})

	inbox, err := s.EmailRepo().ByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(inbox) != 2 || inbox[0].ID != "new" {
		t.Fatalf("inbox order = %+v", inbox)
	}
}

func TestConcurrentUpsertsKeepAllWrites(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	repo := s.ResultRepo()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Save(ctx, &AssessmentResult{ID: fmt.Sprint(i), AssessmentID: "a"})
		}(i)
	}
	wg.Wait()

	all, err := repo.ByAssessment(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 50 {
		t.Fatalf("len = %d, want 50", len(all))
	}
}

func TestLLMEventLog(t *testing.T) {
	backends(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		repo := s.EventRepo()

		for i, p := range []string{"assessment-questions", "assessment-questions", "other"} {
			err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
				Provider:     "openai",
				Model:        "gpt-4o-mini",
				Purpose:      p,
				InputTokens:  100,
				OutputTokens: 50,
				LatencyMs:    int64(100 * (i + 1)),
				Success:      true,
			})
			if err != nil {
				t.Fatalf("append: %v", err)
			}
		}

		events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
		if err != nil {
			t.Fatal(err)
		}
		if len(events) != 2 || events[0].ID != 3 || events[1].ID != 2 {
			t.Fatalf("query = %+v", events)
		}

		e, err := repo.GetLLMEvent(ctx, 1)
		if err != nil || e == nil {
			t.Fatalf("get = %v, %v", e, err)
		}

		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(byPurpose) != 2 {
			t.Fatalf("purposes = %+v", byPurpose)
		}
		top := byPurpose[0]
		if top.Purpose != "assessment-questions" || top.Calls != 2 || top.InputTokens != 200 || top.AvgLatencyMs != 150 {
			t.Errorf("top purpose = %+v", top)
		}

		byModel, _ := repo.LLMUsageByModel(ctx)
		if len(byModel) != 1 || byModel[0].Calls != 3 {
			t.Errorf("models = %+v", byModel)
		}
	})
}

func TestLLMEventLogCapped(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	repo := s.EventRepo()
	for i := 0; i < maxLLMEvents+5; i++ {
		_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "x"})
	}
	all, _ := repo.QueryLLMEvents(ctx, QueryOpts{})
	if len(all) != maxLLMEvents {
		t.Fatalf("len = %d, want %d", len(all), maxLLMEvents)
	}
	if all[0].ID != maxLLMEvents+5 {
		t.Errorf("newest id = %d", all[0].ID)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("UPSKILL_DB", filepath.Join(dir, "custom", "x.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join(dir, "custom", "x.db") {
		t.Errorf("env path = %s", p)
	}
	if _, err := os.Stat(filepath.Join(dir, "custom")); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}

	t.Setenv("UPSKILL_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join(dir, "upskill", "upskill.db") {
		t.Errorf("xdg path = %s", p)
	}
}
