// Package lifecycle manages interview records across two stores at once: the
// remote API and a per-user local snapshot. Fully authenticated accounts read
// and write through the API; OAuth-provisioned and demo accounts are
// local-backed and fall back to the snapshot whenever the API cannot serve
// them, so interview operations keep working without a server.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/riddhisc/hrdash/pkg/atsclient"
	"github.com/riddhisc/hrdash/pkg/ids"
	"github.com/riddhisc/hrdash/pkg/localstore"
	"github.com/riddhisc/hrdash/pkg/models"
)

// ErrNotFound is returned when a remote-backed lookup finds nothing in
// either store.
var ErrNotFound = errors.New("interview not found")

// defaultEditTimeout bounds the remote call during an edit so the caller is
// never left hanging on a slow server.
const defaultEditTimeout = 5 * time.Second

// Session describes the account the manager acts for. LocalBacked is
// computed per call, never cached, so a session upgrade (e.g. demo toggle
// cleared after full login) takes effect immediately.
type Session struct {
	UserID   string
	Provider string // "local", "google"
	Demo     bool
}

// LocalBacked reports whether this session's interviews live in the local
// snapshot rather than the remote API.
func (s Session) LocalBacked() bool {
	return s.Demo || s.Provider == "google"
}

// Outcome says where a mutation actually landed.
type Outcome string

const (
	// OutcomePersisted means the server accepted the mutation.
	OutcomePersisted Outcome = "persisted"
	// OutcomeLocalOnly means the mutation reached only the local snapshot
	// (or, for remote-backed sessions on a swallowed failure, nothing
	// durable at all) and the returned record is the best available view.
	OutcomeLocalOnly Outcome = "local-only"
)

// Result is the record a mutation settled on plus where it was persisted.
type Result struct {
	Interview models.Interview
	Outcome   Outcome
}

// Remote is the slice of the API client the manager needs.
// *atsclient.Client satisfies it.
type Remote interface {
	ListInterviews(ctx context.Context) ([]models.Interview, error)
	GetInterview(ctx context.Context, id string) (*models.Interview, error)
	CreateInterview(ctx context.Context, iv models.Interview) (*models.Interview, error)
	PatchInterview(ctx context.Context, id string, iv models.Interview) (*models.Interview, error)
	UpdateInterviewStatus(ctx context.Context, id string, status models.InterviewStatus) (*models.Interview, error)
	SubmitInterviewFeedback(ctx context.Context, id string, fb models.Feedback) (*models.Interview, error)
	DeleteInterview(ctx context.Context, id string) error
}

var _ Remote = (*atsclient.Client)(nil)

// Manager coordinates the two stores.
type Manager struct {
	remote      Remote
	store       localstore.InterviewStore
	logger      *slog.Logger
	editTimeout time.Duration
	now         func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithEditTimeout overrides the per-edit remote deadline.
func WithEditTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.editTimeout = d
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager builds a manager over the given API client and local store.
func NewManager(remote Remote, store localstore.InterviewStore, opts ...Option) *Manager {
	m := &Manager{
		remote:      remote,
		store:       store,
		logger:      slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		editTimeout: defaultEditTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// loadLocal reads the snapshot, degrading a read failure to an empty slice.
// A corrupt snapshot must never take interview listing down with it.
func (m *Manager) loadLocal(ctx context.Context) []models.Interview {
	local, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("local interview snapshot unreadable, starting empty", "error", err)
		return []models.Interview{}
	}
	return local
}

// saveLocal writes the snapshot, logging instead of failing. Callers treat
// the in-memory result as authoritative either way.
func (m *Manager) saveLocal(ctx context.Context, interviews []models.Interview) {
	if err := m.store.Save(ctx, interviews); err != nil {
		m.logger.Warn("failed to persist local interview snapshot", "error", err)
	}
}

// mergeByID combines a remote listing with local-only records: every remote
// record wins, and local records whose id the server does not know are kept.
func mergeByID(remote, local []models.Interview) []models.Interview {
	merged := append([]models.Interview{}, remote...)
	for _, lv := range local {
		known := false
		for _, rv := range remote {
			if ids.Equal(rv.ID, lv.ID) {
				known = true
				break
			}
		}
		if !known {
			merged = append(merged, lv)
		}
	}
	return merged
}

// List returns the interviews visible to the session.
//
// Local-backed sessions never get an error from List: a populated snapshot
// is returned as-is, an empty snapshot triggers one remote attempt whose
// result (if any) is absorbed into the snapshot, and a remote failure just
// means the empty snapshot stands.
func (m *Manager) List(ctx context.Context, sess Session) ([]models.Interview, error) {
	if !sess.LocalBacked() {
		return m.remote.ListInterviews(ctx)
	}

	local := m.loadLocal(ctx)
	if len(local) > 0 {
		return local, nil
	}

	remote, err := m.remote.ListInterviews(ctx)
	if err != nil {
		m.logger.Debug("remote interview list unavailable, serving snapshot", "error", err)
		return local, nil
	}
	merged := mergeByID(remote, local)
	if len(merged) > 0 {
		m.saveLocal(ctx, merged)
	}
	return merged, nil
}

// Get finds one interview by id. Local-backed sessions that hold no record
// under the id get a synthesized placeholder (status scheduled, dated now)
// which is also written back to the snapshot, so a dangling reference from
// elsewhere in the app resolves to something renderable instead of an error.
func (m *Manager) Get(ctx context.Context, sess Session, id string) (*models.Interview, error) {
	if sess.LocalBacked() {
		local := m.loadLocal(ctx)
		for i := range local {
			if ids.Equal(local[i].ID, id) {
				iv := local[i]
				return &iv, nil
			}
		}
	}

	if !ids.IsLocal(ids.Normalize(id)) {
		iv, err := m.remote.GetInterview(ctx, ids.Normalize(id))
		if err == nil {
			return iv, nil
		}
		if !sess.LocalBacked() {
			var apiErr *atsclient.APIError
			if errors.As(err, &apiErr) && apiErr.Status == 404 {
				return nil, ErrNotFound
			}
			return nil, err
		}
		m.logger.Debug("remote interview lookup failed, synthesizing placeholder", "id", id, "error", err)
	} else if !sess.LocalBacked() {
		return nil, ErrNotFound
	}

	placeholder := models.Interview{
		ID:        ids.Normalize(id),
		Status:    models.InterviewScheduled,
		Date:      m.now().UTC().Format(time.RFC3339),
		CreatedAt: m.now().UnixMilli(),
		UpdatedAt: m.now().UnixMilli(),
	}
	local := m.loadLocal(ctx)
	m.saveLocal(ctx, append(local, placeholder))
	return &placeholder, nil
}

// findCurrent resolves the freshest known copy of an interview, checking
// the snapshot first and then the API. The bool reports whether the record
// was actually found anywhere; if not, a minimal scheduled record under the
// requested id is returned so mutations still have something to work on.
func (m *Manager) findCurrent(ctx context.Context, id string) (models.Interview, bool) {
	local := m.loadLocal(ctx)
	for i := range local {
		if ids.Equal(local[i].ID, id) {
			return local[i], true
		}
	}
	norm := ids.Normalize(id)
	if !ids.IsLocal(norm) {
		if iv, err := m.remote.GetInterview(ctx, norm); err == nil {
			return *iv, true
		}
	}
	return models.Interview{ID: norm, Status: models.InterviewScheduled}, false
}

// upsertLocal writes one record into the snapshot, replacing any record
// under the same id.
func (m *Manager) upsertLocal(ctx context.Context, iv models.Interview) {
	local := m.loadLocal(ctx)
	replaced := false
	for i := range local {
		if ids.Equal(local[i].ID, iv.ID) {
			local[i] = iv
			replaced = true
			break
		}
	}
	if !replaced {
		local = append(local, iv)
	}
	m.saveLocal(ctx, local)
}

// removeLocal deletes a record from the snapshot if present. Removing an
// absent id is a no-op, so callers can retry deletes freely.
func (m *Manager) removeLocal(ctx context.Context, id string) {
	local := m.loadLocal(ctx)
	kept := local[:0]
	for _, iv := range local {
		if !ids.Equal(iv.ID, id) {
			kept = append(kept, iv)
		}
	}
	if len(kept) != len(local) {
		m.saveLocal(ctx, kept)
	}
}
