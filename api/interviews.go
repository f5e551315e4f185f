package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gorilla/mux"
	"github.com/riddhisc/hrdash/pkg/ids"
	"github.com/riddhisc/hrdash/pkg/models"
	"github.com/riddhisc/hrdash/pkg/repository"
)

type InterviewsHandler struct {
	interviewRepo repository.InterviewRepo
	applicantRepo repository.ApplicantRepo
	jobRepo       repository.JobRepo
}

func NewInterviewsHandler(ir repository.InterviewRepo, ar repository.ApplicantRepo, jr repository.JobRepo) *InterviewsHandler {
	return &InterviewsHandler{interviewRepo: ir, applicantRepo: ar, jobRepo: jr}
}

func (h *InterviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	interviews, err := h.interviewRepo.ListInterviews(r.Context())
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, interviews, http.StatusOK)
}

func (h *InterviewsHandler) ListByApplicant(w http.ResponseWriter, r *http.Request) {
	applicantID := mux.Vars(r)["applicantId"]
	interviews, err := h.interviewRepo.ListInterviewsByApplicant(r.Context(), applicantID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, interviews, http.StatusOK)
}

func (h *InterviewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	iv, err := h.interviewRepo.GetInterviewByID(r.Context(), id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if iv == nil {
		writeError(w, http.StatusNotFound, "interview not found")
		return
	}
	writeJSON(w, iv, http.StatusOK)
}

// Create schedules an interview. Ids are syntax-checked before any store
// query so malformed input yields a 400 rather than an opaque store error,
// and the referenced applicant's status is advanced to "interview" unless
// already at or past it.
func (h *InterviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var iv models.Interview
	if err := json.NewDecoder(r.Body).Decode(&iv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if iv.ApplicantID == "" || iv.JobID == "" || iv.Date == "" || iv.Time == "" || iv.Duration <= 0 || iv.Type == "" {
		writeError(w, http.StatusBadRequest, "applicantId, jobId, date, time, duration and type are required")
		return
	}
	if !ids.IsHex(iv.ApplicantID) || !ids.IsHex(iv.JobID) {
		writeError(w, http.StatusBadRequest, "invalid applicant or job id format")
		return
	}

	parsed, err := time.Parse(time.RFC3339, iv.Date)
	if err != nil {
		// tolerate date-only input
		parsed, err = time.Parse("2006-01-02", iv.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date is not a valid calendar date")
			return
		}
	}
	iv.Date = parsed.UTC().Format(time.RFC3339)

	if iv.Status == "" {
		iv.Status = models.InterviewScheduled
	}
	if err := models.Validate(&iv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid interview: "+err.Error())
		return
	}

	ctx := r.Context()
	applicant, err := h.applicantRepo.GetApplicantByID(ctx, iv.ApplicantID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if applicant == nil {
		writeError(w, http.StatusNotFound, "applicant not found")
		return
	}
	job, err := h.jobRepo.GetJobByID(ctx, iv.JobID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	iv.ApplicantName = applicant.Name
	iv.JobTitle = job.Title

	id, err := h.interviewRepo.CreateInterview(ctx, &iv)
	if err != nil {
		writeServerError(w, err)
		return
	}
	iv.ID = id

	if applicant.Status != models.ApplicantInterview && applicant.Status != models.ApplicantHired {
		applicant.Status = models.ApplicantInterview
		if err := h.applicantRepo.UpdateApplicant(ctx, applicant); err != nil {
			logger.Error("advance applicant status", slog.Any("err", err))
		}
	}

	writeJSON(w, iv, http.StatusCreated)
}

// Patch applies partial "new value or existing value" update semantics.
func (h *InterviewsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	existing, err := h.interviewRepo.GetInterviewByID(r.Context(), id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "interview not found")
		return
	}

	var req models.Interview
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	merged := mergeInterview(*existing, req)
	if merged.Date != existing.Date {
		parsed, err := time.Parse(time.RFC3339, merged.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date is not a valid calendar date")
			return
		}
		merged.Date = parsed.UTC().Format(time.RFC3339)
	}
	if err := models.Validate(&merged); err != nil {
		writeError(w, http.StatusBadRequest, "invalid interview: "+err.Error())
		return
	}

	if err := h.interviewRepo.UpdateInterview(r.Context(), &merged); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "interview not found")
			return
		}
		writeServerError(w, err)
		return
	}
	writeJSON(w, merged, http.StatusOK)
}

func (h *InterviewsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status := models.InterviewStatus(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	iv, err := h.interviewRepo.GetInterviewByID(r.Context(), id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if iv == nil {
		writeError(w, http.StatusNotFound, "interview not found")
		return
	}

	iv.Status = status
	if err := h.interviewRepo.UpdateInterview(r.Context(), iv); err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, iv, http.StatusOK)
}

// SubmitFeedback merges the feedback sub-record, forces the interview to
// "completed", and advances the applicant when the recommendation is hire
// or reject. The applicant update is idempotent when already at the target
// status.
func (h *InterviewsHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var fb models.Feedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.Validate(&fb); err != nil {
		writeError(w, http.StatusBadRequest, "invalid feedback: "+err.Error())
		return
	}

	ctx := r.Context()
	iv, err := h.interviewRepo.GetInterviewByID(ctx, id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if iv == nil {
		writeError(w, http.StatusNotFound, "interview not found")
		return
	}

	iv.Feedback = &fb
	iv.Status = models.InterviewCompleted
	if err := h.interviewRepo.UpdateInterview(ctx, iv); err != nil {
		writeServerError(w, err)
		return
	}

	var target models.ApplicantStatus
	switch fb.Recommendation {
	case models.RecommendHire:
		target = models.ApplicantHired
	case models.RecommendReject:
		target = models.ApplicantRejected
	}
	if target != "" {
		applicant, err := h.applicantRepo.GetApplicantByID(ctx, iv.ApplicantID)
		if err == nil && applicant != nil && applicant.Status != target {
			applicant.Status = target
			if err := h.applicantRepo.UpdateApplicant(ctx, applicant); err != nil {
				logger.Error("advance applicant from feedback", slog.Any("err", err))
			}
		}
	}

	writeJSON(w, iv, http.StatusOK)
}

func (h *InterviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	iv, err := h.interviewRepo.GetInterviewByID(r.Context(), id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if iv == nil {
		writeError(w, http.StatusNotFound, "interview not found")
		return
	}
	if err := h.interviewRepo.DeleteInterview(r.Context(), id); err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "interview removed"}, http.StatusOK)
}

func mergeInterview(existing, req models.Interview) models.Interview {
	out := existing
	if req.ApplicantID != "" {
		out.ApplicantID = req.ApplicantID
	}
	if req.JobID != "" {
		out.JobID = req.JobID
	}
	if req.Interviewers != nil {
		out.Interviewers = req.Interviewers
	}
	if req.Date != "" {
		out.Date = req.Date
	}
	if req.Time != "" {
		out.Time = req.Time
	}
	if req.Duration != 0 {
		out.Duration = req.Duration
	}
	if req.Type != "" {
		out.Type = req.Type
	}
	if req.Location != "" {
		out.Location = req.Location
	}
	if req.Status != "" {
		out.Status = req.Status
	}
	if req.Feedback != nil {
		out.Feedback = req.Feedback
	}
	if req.Notes != "" {
		out.Notes = req.Notes
	}
	if req.ApplicantName != "" {
		out.ApplicantName = req.ApplicantName
	}
	if req.JobTitle != "" {
		out.JobTitle = req.JobTitle
	}
	return out
}
