package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riddhisc/hrdash/pkg/ids"
	"github.com/riddhisc/hrdash/pkg/models"
	"github.com/riddhisc/hrdash/pkg/repository/mock"
)

func newInterviewRouter(mocks *mock.Mocks) *mux.Router {
	h := NewInterviewsHandler(mocks.Interviews, mocks.Applicants, mocks.Jobs)
	r := mux.NewRouter()
	r.HandleFunc("/api/interviews", h.Create).Methods("POST")
	r.HandleFunc("/api/interviews/{id}", h.Get).Methods("GET")
	r.HandleFunc("/api/interviews/{id}", h.Patch).Methods("PATCH")
	r.HandleFunc("/api/interviews/{id}/status", h.UpdateStatus).Methods("PUT")
	r.HandleFunc("/api/interviews/{id}/feedback", h.SubmitFeedback).Methods("PUT")
	r.HandleFunc("/api/interviews/{id}", h.Delete).Methods("DELETE")
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func seedApplicantAndJob(mocks *mock.Mocks) (models.Applicant, models.Job) {
	job := models.Job{
		ID: ids.New(), Title: "Backend Engineer", Department: "Engineering",
		Location: "Remote", Type: models.JobFullTime, Status: models.JobOpen,
		ClosingDate: "2026-12-31",
	}
	applicant := models.Applicant{
		ID: ids.New(), Name: "Ana Silva", Email: "ana@example.com",
		JobID: job.ID, Status: models.ApplicantPending, Source: models.SourceLinkedIn,
	}
	mocks.Jobs.Stored = append(mocks.Jobs.Stored, job)
	mocks.Applicants.Stored = append(mocks.Applicants.Stored, applicant)
	return applicant, job
}

func validInterviewRequest(applicant models.Applicant, job models.Job) models.Interview {
	return models.Interview{
		ApplicantID: applicant.ID,
		JobID:       job.ID,
		Date:        "2026-09-15",
		Time:        "10:30",
		Duration:    60,
		Type:        models.InterviewVideo,
	}
}

func TestCreateInterview(t *testing.T) {
	mocks := mock.NewMocks()
	applicant, job := seedApplicantAndJob(mocks)
	r := newInterviewRouter(mocks)

	rec := doJSON(t, r, http.MethodPost, "/api/interviews", validInterviewRequest(applicant, job))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got models.Interview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "2026-09-15T00:00:00Z", got.Date, "date-only input is canonicalized")
	assert.Equal(t, "Ana Silva", got.ApplicantName)
	assert.Equal(t, "Backend Engineer", got.JobTitle)
	assert.Equal(t, models.InterviewScheduled, got.Status)

	// Scheduling advances the applicant into the interview stage.
	assert.Equal(t, models.ApplicantInterview, mocks.Applicants.Stored[0].Status)
}

func TestCreateInterviewDoesNotDemoteHired(t *testing.T) {
	mocks := mock.NewMocks()
	applicant, job := seedApplicantAndJob(mocks)
	mocks.Applicants.Stored[0].Status = models.ApplicantHired
	r := newInterviewRouter(mocks)

	rec := doJSON(t, r, http.MethodPost, "/api/interviews", validInterviewRequest(applicant, job))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.ApplicantHired, mocks.Applicants.Stored[0].Status)
}

func TestCreateInterviewValidation(t *testing.T) {
	mocks := mock.NewMocks()
	applicant, job := seedApplicantAndJob(mocks)
	r := newInterviewRouter(mocks)

	tests := []struct {
		name   string
		mutate func(*models.Interview)
		status int
	}{
		{"missing time", func(iv *models.Interview) { iv.Time = "" }, http.StatusBadRequest},
		{"zero duration", func(iv *models.Interview) { iv.Duration = 0 }, http.StatusBadRequest},
		{"malformed applicant id", func(iv *models.Interview) { iv.ApplicantID = "not-hex" }, http.StatusBadRequest},
		{"synthetic applicant id", func(iv *models.Interview) { iv.ApplicantID = ids.NewLocal() }, http.StatusBadRequest},
		{"bad date", func(iv *models.Interview) { iv.Date = "someday" }, http.StatusBadRequest},
		{"unknown applicant", func(iv *models.Interview) { iv.ApplicantID = ids.New() }, http.StatusNotFound},
		{"unknown job", func(iv *models.Interview) { iv.JobID = ids.New() }, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validInterviewRequest(applicant, job)
			tt.mutate(&req)
			rec := doJSON(t, r, http.MethodPost, "/api/interviews", req)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestPatchInterviewKeepsUnsetFields(t *testing.T) {
	mocks := mock.NewMocks()
	applicant, job := seedApplicantAndJob(mocks)
	existing := validInterviewRequest(applicant, job)
	existing.ID = ids.New()
	existing.Date = "2026-09-15T00:00:00Z"
	existing.Status = models.InterviewScheduled
	existing.Location = "Room 4"
	mocks.Interviews.Stored = append(mocks.Interviews.Stored, existing)
	r := newInterviewRouter(mocks)

	rec := doJSON(t, r, http.MethodPatch, "/api/interviews/"+existing.ID, models.Interview{Time: "16:00"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got models.Interview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "16:00", got.Time)
	assert.Equal(t, "Room 4", got.Location)
	assert.Equal(t, existing.Date, got.Date)
}

func TestSubmitFeedbackHireFlow(t *testing.T) {
	mocks := mock.NewMocks()
	applicant, job := seedApplicantAndJob(mocks)
	iv := validInterviewRequest(applicant, job)
	iv.ID = ids.New()
	iv.Date = "2026-09-15T00:00:00Z"
	iv.Status = models.InterviewScheduled
	mocks.Interviews.Stored = append(mocks.Interviews.Stored, iv)
	r := newInterviewRouter(mocks)

	rec := doJSON(t, r, http.MethodPut, "/api/interviews/"+iv.ID+"/feedback", models.Feedback{
		Rating:         5,
		Strengths:      "deep systems knowledge",
		Recommendation: models.RecommendHire,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got models.Interview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.InterviewCompleted, got.Status, "feedback completes the interview")
	require.NotNil(t, got.Feedback)
	assert.Equal(t, 5, got.Feedback.Rating)

	assert.Equal(t, models.ApplicantHired, mocks.Applicants.Stored[0].Status)

	// Submitting again with the same recommendation changes nothing further.
	rec = doJSON(t, r, http.MethodPut, "/api/interviews/"+iv.ID+"/feedback", models.Feedback{
		Rating: 5, Recommendation: models.RecommendHire,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ApplicantHired, mocks.Applicants.Stored[0].Status)
}

func TestSubmitFeedbackConsiderLeavesApplicant(t *testing.T) {
	mocks := mock.NewMocks()
	applicant, job := seedApplicantAndJob(mocks)
	mocks.Applicants.Stored[0].Status = models.ApplicantInterview
	iv := validInterviewRequest(applicant, job)
	iv.ID = ids.New()
	iv.Date = "2026-09-15T00:00:00Z"
	mocks.Interviews.Stored = append(mocks.Interviews.Stored, iv)
	r := newInterviewRouter(mocks)

	rec := doJSON(t, r, http.MethodPut, "/api/interviews/"+iv.ID+"/feedback", models.Feedback{
		Rating: 3, Recommendation: models.RecommendConsider,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ApplicantInterview, mocks.Applicants.Stored[0].Status)
}

func TestUpdateInterviewStatus(t *testing.T) {
	mocks := mock.NewMocks()
	applicant, job := seedApplicantAndJob(mocks)
	iv := validInterviewRequest(applicant, job)
	iv.ID = ids.New()
	mocks.Interviews.Stored = append(mocks.Interviews.Stored, iv)
	r := newInterviewRouter(mocks)

	rec := doJSON(t, r, http.MethodPut, "/api/interviews/"+iv.ID+"/status", map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.InterviewCancelled, mocks.Interviews.Stored[0].Status)

	rec = doJSON(t, r, http.MethodPut, "/api/interviews/"+iv.ID+"/status", map[string]string{"status": "paused"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteInterview(t *testing.T) {
	mocks := mock.NewMocks()
	applicant, job := seedApplicantAndJob(mocks)
	iv := validInterviewRequest(applicant, job)
	iv.ID = ids.New()
	mocks.Interviews.Stored = append(mocks.Interviews.Stored, iv)
	r := newInterviewRouter(mocks)

	rec := doJSON(t, r, http.MethodDelete, "/api/interviews/"+iv.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, mocks.Interviews.Stored)

	rec = doJSON(t, r, http.MethodDelete, "/api/interviews/"+iv.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
