package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riddhisc/hrdash/pkg/models"
)

func TestCountApplicants(t *testing.T) {
	applicants := []models.Applicant{
		{Status: models.ApplicantPending, Source: models.SourceLinkedIn},
		{Status: models.ApplicantPending, Source: models.SourceReferral},
		{Status: models.ApplicantHired, Source: models.SourceLinkedIn},
	}

	got := CountApplicants(applicants)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.ByStatus[models.ApplicantPending])
	assert.Equal(t, 1, got.ByStatus[models.ApplicantHired])
	assert.Equal(t, 2, got.BySource[models.SourceLinkedIn])
}

func TestApplicantsPerJob(t *testing.T) {
	jobs := []models.Job{
		{ID: "65a000000000000000000001", Title: "Backend Engineer"},
		{ID: "65a000000000000000000002", Title: "Designer"},
	}
	applicants := []models.Applicant{
		{JobID: "65a000000000000000000001"},
		{JobID: "65A000000000000000000001"}, // id comparison is case-insensitive
		{JobID: "65a000000000000000000099"}, // unknown job, not counted
	}

	got := ApplicantsPerJob(jobs, applicants)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, 0, got[1].Count, "jobs without applicants keep a zero entry")
}

func TestApplicantTrend(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	applicants := []models.Applicant{
		{AppliedDate: "2026-08-10T09:00:00Z"},
		{AppliedDate: "2026-08-25"},
		{AppliedDate: "2026-06-01T00:00:00Z"},
		{AppliedDate: "2026-01-15T00:00:00Z"}, // outside the window
		{AppliedDate: "when I felt like it"}, // skipped
	}

	got := ApplicantTrend(applicants, now)
	require.Len(t, got, 6)

	assert.Equal(t, "Mar", got[0].Label)
	assert.Equal(t, "Aug", got[5].Label)
	assert.Equal(t, 2026, got[5].Year)
	assert.Equal(t, 2, got[5].Count)
	assert.Equal(t, 1, got[3].Count) // June
	assert.Equal(t, 0, got[1].Count)
}

func TestCountInterviewsByStatus(t *testing.T) {
	got := CountInterviewsByStatus([]models.Interview{
		{Status: models.InterviewScheduled},
		{Status: models.InterviewScheduled},
		{Status: models.InterviewCancelled},
	})
	assert.Equal(t, 2, got[models.InterviewScheduled])
	assert.Equal(t, 1, got[models.InterviewCancelled])
	assert.Equal(t, 0, got[models.InterviewCompleted])
}
