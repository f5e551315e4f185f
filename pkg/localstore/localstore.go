// Package localstore persists per-user interview snapshots outside the API,
// so that demo and OAuth-provisioned sessions keep working without a server
// round trip. Snapshots are plain JSON arrays validated against a schema on
// load, so a corrupted file is detected instead of silently half-parsed.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/qri-io/jsonschema"

	"github.com/riddhisc/hrdash/pkg/models"
)

// InterviewStore holds the local interview snapshot for one user.
type InterviewStore interface {
	// Load returns the current snapshot. A missing snapshot is not an
	// error: it loads as an empty slice.
	Load(ctx context.Context) ([]models.Interview, error)
	// Save replaces the snapshot.
	Save(ctx context.Context, interviews []models.Interview) error
}

// snapshotSchema is deliberately loose: it pins down the array shape and the
// fields the lifecycle manager relies on, not the full record.
const snapshotSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "status"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"status": {
				"type": "string",
				"enum": ["scheduled", "completed", "cancelled"]
			},
			"applicantId": {"type": "string"},
			"jobId": {"type": "string"},
			"date": {"type": "string"}
		}
	}
}`

// FileStore keeps one JSON file per user under a base directory.
type FileStore struct {
	dir    string
	userID string
	schema *jsonschema.Schema

	mu sync.Mutex
}

// NewFileStore creates a store rooted at dir for the given user. The
// directory is created if it does not exist.
func NewFileStore(dir, userID string) (*FileStore, error) {
	if userID == "" {
		return nil, errors.New("localstore: user id is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: create dir: %w", err)
	}

	schema := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(snapshotSchema), schema); err != nil {
		return nil, fmt.Errorf("localstore: parse snapshot schema: %w", err)
	}

	return &FileStore{dir: dir, userID: userID, schema: schema}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, "interviews-"+s.userID+".json")
}

func (s *FileStore) Load(ctx context.Context) ([]models.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Interview{}, nil
		}
		return nil, fmt.Errorf("localstore: read snapshot: %w", err)
	}

	keyErrs, err := s.schema.ValidateBytes(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("localstore: corrupt snapshot: %w", err)
	}
	if len(keyErrs) > 0 {
		return nil, fmt.Errorf("localstore: corrupt snapshot: %s", keyErrs[0].Error())
	}

	var interviews []models.Interview
	if err := json.Unmarshal(data, &interviews); err != nil {
		return nil, fmt.Errorf("localstore: decode snapshot: %w", err)
	}
	return interviews, nil
}

func (s *FileStore) Save(ctx context.Context, interviews []models.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if interviews == nil {
		interviews = []models.Interview{}
	}
	data, err := json.MarshalIndent(interviews, "", "  ")
	if err != nil {
		return fmt.Errorf("localstore: encode snapshot: %w", err)
	}

	// Write through a temp file so a crash mid-write cannot truncate the
	// previous snapshot.
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("localstore: write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return fmt.Errorf("localstore: replace snapshot: %w", err)
	}
	return nil
}

// MemStore is an in-memory InterviewStore for tests.
type MemStore struct {
	mu         sync.Mutex
	Interviews []models.Interview

	LoadErr error
	SaveErr error
}

func NewMemStore(seed ...models.Interview) *MemStore {
	return &MemStore{Interviews: append([]models.Interview{}, seed...)}
}

func (s *MemStore) Load(ctx context.Context) ([]models.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return append([]models.Interview{}, s.Interviews...), nil
}

func (s *MemStore) Save(ctx context.Context, interviews []models.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Interviews = append([]models.Interview{}, interviews...)
	return nil
}
