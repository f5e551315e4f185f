package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riddhisc/hrdash/pkg/atsclient"
	"github.com/riddhisc/hrdash/pkg/ids"
	"github.com/riddhisc/hrdash/pkg/models"
)

// normalizeDate accepts RFC 3339 or a bare calendar date and canonicalizes
// to RFC 3339 UTC.
func normalizeDate(raw string) (string, error) {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return "", fmt.Errorf("invalid interview date %q", raw)
		}
	}
	return parsed.UTC().Format(time.RFC3339), nil
}

// Create schedules an interview. Local-backed sessions get a synthetic id
// and a snapshot write; everyone else goes through the API. Display fields
// are resolved from the applicants and jobs the caller already holds, not
// re-fetched.
func (m *Manager) Create(ctx context.Context, sess Session, iv models.Interview, applicants []models.Applicant, jobs []models.Job) (*Result, error) {
	if iv.ApplicantID == "" {
		return nil, errors.New("applicant id is required")
	}
	if iv.Date == "" {
		return nil, errors.New("interview date is required")
	}
	date, err := normalizeDate(iv.Date)
	if err != nil {
		return nil, err
	}
	iv.Date = date
	if iv.Status == "" {
		iv.Status = models.InterviewScheduled
	}

	if sess.LocalBacked() {
		iv.ID = ids.NewLocal()
		iv.ApplicantName = resolveApplicantName(applicants, iv.ApplicantID)
		iv.JobTitle = resolveJobTitle(jobs, iv.JobID)
		now := m.now().UnixMilli()
		iv.CreatedAt = now
		iv.UpdatedAt = now

		local := m.loadLocal(ctx)
		if err := m.store.Save(ctx, append(local, iv)); err != nil {
			return nil, fmt.Errorf("save interview snapshot: %w", err)
		}
		return &Result{Interview: iv, Outcome: OutcomeLocalOnly}, nil
	}

	// Synthetic ids exist only in a snapshot; the server cannot resolve
	// them, so reject before the round trip.
	if ids.IsLocal(ids.Normalize(iv.ApplicantID)) || ids.IsLocal(ids.Normalize(iv.JobID)) {
		return nil, errors.New("cannot schedule against a record that exists only locally")
	}
	if iv.JobID == "" {
		return nil, errors.New("job id is required")
	}

	created, err := m.remote.CreateInterview(ctx, iv)
	if err != nil {
		return nil, err
	}
	return &Result{Interview: *created, Outcome: OutcomePersisted}, nil
}

func resolveApplicantName(applicants []models.Applicant, applicantID string) string {
	for _, a := range applicants {
		if ids.Equal(a.ID, applicantID) {
			return a.Name
		}
	}
	return "Unknown Applicant"
}

func resolveJobTitle(jobs []models.Job, jobID string) string {
	for _, j := range jobs {
		if ids.Equal(j.ID, jobID) {
			return j.Title
		}
	}
	return "General Interview"
}

// UpdateStatus sets an interview's status. The current record is resolved
// first so the caller always gets a complete interview back. A network-class
// remote failure is downgraded to a local-only result rather than an error;
// a semantic rejection from the server is still propagated.
func (m *Manager) UpdateStatus(ctx context.Context, sess Session, id string, status models.InterviewStatus) (*Result, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid interview status %q", status)
	}

	current, _ := m.findCurrent(ctx, id)
	current.Status = status
	current.UpdatedAt = m.now().UnixMilli()

	if sess.LocalBacked() || ids.IsLocal(current.ID) {
		m.upsertLocal(ctx, current)
		return &Result{Interview: current, Outcome: OutcomeLocalOnly}, nil
	}

	updated, err := m.remote.UpdateInterviewStatus(ctx, current.ID, status)
	if err != nil {
		if atsclient.IsNetworkError(err) {
			m.logger.Warn("status update not persisted remotely", "id", current.ID, "error", err)
			return &Result{Interview: current, Outcome: OutcomeLocalOnly}, nil
		}
		return nil, err
	}
	return &Result{Interview: *updated, Outcome: OutcomePersisted}, nil
}

// Edit applies a partial update. Set fields in changes replace the current
// values; zero fields keep them, which means an edit cannot clear a field
// back to empty. Edit never dead-ends: on any failure the merged record is
// returned as a local-only result, and the remote call is bounded by the
// manager's edit timeout.
func (m *Manager) Edit(ctx context.Context, sess Session, id string, changes models.Interview) (*Result, error) {
	current, _ := m.findCurrent(ctx, id)
	merged := mergeInterview(current, changes)

	if changes.Date != "" {
		if date, err := normalizeDate(changes.Date); err == nil {
			merged.Date = date
		} else {
			m.logger.Warn("keeping previous interview date", "id", id, "error", err)
			merged.Date = current.Date
		}
	}
	merged.UpdatedAt = m.now().UnixMilli()

	if sess.LocalBacked() || ids.IsLocal(merged.ID) {
		m.upsertLocal(ctx, merged)
		return &Result{Interview: merged, Outcome: OutcomeLocalOnly}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, m.editTimeout)
	defer cancel()
	updated, err := m.remote.PatchInterview(callCtx, merged.ID, merged)
	if err != nil {
		m.logger.Warn("edit not persisted remotely", "id", merged.ID, "error", err)
		return &Result{Interview: merged, Outcome: OutcomeLocalOnly}, nil
	}
	return &Result{Interview: *updated, Outcome: OutcomePersisted}, nil
}

// SubmitFeedback attaches feedback and forces the interview to completed.
// If the server answers with a different status than the one sent, the sent
// status wins in the returned record: feedback alone must not look like it
// rescheduled or cancelled the interview.
func (m *Manager) SubmitFeedback(ctx context.Context, sess Session, id string, fb models.Feedback) (*Result, error) {
	if err := models.Validate(fb); err != nil {
		return nil, err
	}

	current, _ := m.findCurrent(ctx, id)
	current.Feedback = &fb
	current.Status = models.InterviewCompleted
	current.UpdatedAt = m.now().UnixMilli()

	if sess.LocalBacked() || ids.IsLocal(current.ID) {
		m.upsertLocal(ctx, current)
		return &Result{Interview: current, Outcome: OutcomeLocalOnly}, nil
	}

	updated, err := m.remote.SubmitInterviewFeedback(ctx, current.ID, fb)
	if err != nil {
		if atsclient.IsNetworkError(err) {
			m.logger.Warn("feedback not persisted remotely", "id", current.ID, "error", err)
			return &Result{Interview: current, Outcome: OutcomeLocalOnly}, nil
		}
		return nil, err
	}
	result := *updated
	if result.Status != current.Status {
		result.Status = current.Status
	}
	return &Result{Interview: result, Outcome: OutcomePersisted}, nil
}

// Delete removes an interview. The remote delete is always attempted first,
// even for local-backed sessions, so a record that exists in both stores
// disappears from both. Local removal is idempotent; a remote failure for a
// local-backed session is not an error, since their store is the snapshot.
func (m *Manager) Delete(ctx context.Context, sess Session, id string) error {
	var remoteErr error
	if !ids.IsLocal(ids.Normalize(id)) {
		remoteErr = m.remote.DeleteInterview(ctx, ids.Normalize(id))
	} else {
		remoteErr = errors.New("synthetic id, remote delete skipped")
	}

	if sess.LocalBacked() || remoteErr != nil {
		m.removeLocal(ctx, id)
	}

	if remoteErr != nil && !sess.LocalBacked() && !ids.IsLocal(ids.Normalize(id)) {
		return remoteErr
	}
	return nil
}

// mergeInterview keeps every current field unless changes sets it.
func mergeInterview(current, changes models.Interview) models.Interview {
	merged := current
	if changes.ApplicantID != "" {
		merged.ApplicantID = changes.ApplicantID
	}
	if changes.JobID != "" {
		merged.JobID = changes.JobID
	}
	if len(changes.Interviewers) > 0 {
		merged.Interviewers = changes.Interviewers
	}
	if changes.Time != "" {
		merged.Time = changes.Time
	}
	if changes.Duration != 0 {
		merged.Duration = changes.Duration
	}
	if changes.Type != "" {
		merged.Type = changes.Type
	}
	if changes.Location != "" {
		merged.Location = changes.Location
	}
	if changes.Status != "" {
		merged.Status = changes.Status
	}
	if changes.Notes != "" {
		merged.Notes = changes.Notes
	}
	if changes.ApplicantName != "" {
		merged.ApplicantName = changes.ApplicantName
	}
	if changes.JobTitle != "" {
		merged.JobTitle = changes.JobTitle
	}
	if changes.Feedback != nil {
		merged.Feedback = changes.Feedback
	}
	return merged
}
