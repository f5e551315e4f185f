package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/riddhisc/hrdash/pkg/models"
	"github.com/riddhisc/hrdash/pkg/repository"
)

type JobsHandler struct {
	jobRepo repository.JobRepo
}

func NewJobsHandler(jr repository.JobRepo) *JobsHandler {
	return &JobsHandler{jobRepo: jr}
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.JobFilter{
		Status: q.Get("status"),
		Type:   q.Get("type"),
		Search: q.Get("search"),
	}
	jobsList, err := h.jobRepo.ListJobs(r.Context(), f)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, jobsList, http.StatusOK)
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, err := h.jobRepo.GetJobByID(r.Context(), id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, job, http.StatusOK)
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if job.Status == "" {
		job.Status = models.JobDraft
	}
	if err := models.Validate(&job); err != nil {
		writeError(w, http.StatusBadRequest, "invalid job: "+err.Error())
		return
	}
	job.UserID = userID(r)

	id, err := h.jobRepo.CreateJob(r.Context(), &job)
	if err != nil {
		writeServerError(w, err)
		return
	}
	job.ID = id
	writeJSON(w, job, http.StatusCreated)
}

// Update applies partial "new value or existing value" semantics: absent
// fields keep their prior values. Absent and explicitly empty are
// indistinguishable here, so an update cannot clear a field back to empty.
func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	existing, err := h.jobRepo.GetJobByID(r.Context(), id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	var req models.Job
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	merged := mergeJob(*existing, req)
	if err := models.Validate(&merged); err != nil {
		writeError(w, http.StatusBadRequest, "invalid job: "+err.Error())
		return
	}

	if err := h.jobRepo.UpdateJob(r.Context(), &merged); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		writeServerError(w, err)
		return
	}
	writeJSON(w, merged, http.StatusOK)
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	existing, err := h.jobRepo.GetJobByID(r.Context(), id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	// No cascade: the job's applicants keep their references.
	if err := h.jobRepo.DeleteJob(r.Context(), id); err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "job removed"}, http.StatusOK)
}

func mergeJob(existing, req models.Job) models.Job {
	out := existing
	if req.Title != "" {
		out.Title = req.Title
	}
	if req.Department != "" {
		out.Department = req.Department
	}
	if req.Location != "" {
		out.Location = req.Location
	}
	if req.Type != "" {
		out.Type = req.Type
	}
	if req.Description != "" {
		out.Description = req.Description
	}
	if req.Requirements != "" {
		out.Requirements = req.Requirements
	}
	if req.Salary.Min != 0 {
		out.Salary.Min = req.Salary.Min
	}
	if req.Salary.Max != 0 {
		out.Salary.Max = req.Salary.Max
	}
	if req.Salary.Currency != "" {
		out.Salary.Currency = req.Salary.Currency
	}
	if req.Skills != nil {
		out.Skills = req.Skills
	}
	if req.Status != "" {
		out.Status = req.Status
	}
	if req.PostingDate != "" {
		out.PostingDate = req.PostingDate
	}
	if req.ClosingDate != "" {
		out.ClosingDate = req.ClosingDate
	}
	return out
}
