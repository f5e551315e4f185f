package jobs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	dbfs "github.com/riddhisc/hrdash/db"
	"github.com/riddhisc/hrdash/internal/db"
	"github.com/riddhisc/hrdash/internal/jobs"
	"github.com/riddhisc/hrdash/internal/uploads"
)

func newQueue(t *testing.T) (*jobs.Repository, context.Context) {
	t.Helper()
	ctx := context.Background()
	// shared in-memory DB so multiple connections see the same schema
	d, err := db.New(ctx, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return jobs.NewRepository(d), ctx
}

func TestEnqueueAndProcess(t *testing.T) {
	repo, ctx := newQueue(t)

	handled := make(chan struct{}, 1)
	handlers := map[string]jobs.Handler{
		"test": func(ctx context.Context, j *jobs.Job) error {
			handled <- struct{}{}
			return nil
		},
	}
	pool := jobs.NewWorkerPool(repo, handlers, nil, 1)
	pool.Start(ctx)
	defer pool.Stop()

	if _, err := pool.Enqueue(ctx, "test", map[string]string{"foo": "bar"}, 10, 3); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-handled:
		// ok
	case <-time.After(3 * time.Second):
		t.Fatalf("handler was not called")
	}
}

func TestResumeDeleteHandler(t *testing.T) {
	repo, ctx := newQueue(t)

	dir := t.TempDir()
	store, err := uploads.NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	name := "resume-test.pdf"
	if err := os.WriteFile(filepath.Join(dir, name), []byte("fake"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	handlers := map[string]jobs.Handler{
		jobs.TypeResumeDelete: jobs.ResumeDeleteHandler(store),
	}
	pool := jobs.NewWorkerPool(repo, handlers, nil, 1)
	pool.Start(ctx)
	defer pool.Stop()

	if _, err := pool.Enqueue(ctx, jobs.TypeResumeDelete, jobs.ResumeDeletePayload{Filename: name}, 100, 3); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			// enqueue for a file that is already gone must also succeed
			if _, err := pool.Enqueue(ctx, jobs.TypeResumeDelete, jobs.ResumeDeletePayload{Filename: name}, 100, 3); err != nil {
				t.Fatalf("enqueue absent: %v", err)
			}
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("resume file was not deleted")
}
