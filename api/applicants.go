package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/gorilla/mux"
	"github.com/riddhisc/hrdash/internal/jobs"
	"github.com/riddhisc/hrdash/internal/uploads"
	"github.com/riddhisc/hrdash/pkg/models"
	"github.com/riddhisc/hrdash/pkg/repository"
)

const defaultPageSize = 10

type ApplicantsHandler struct {
	applicantRepo repository.ApplicantRepo
	jobRepo       repository.JobRepo
	files         *uploads.Store
	cleanup       *jobs.WorkerPool
}

func NewApplicantsHandler(ar repository.ApplicantRepo, jr repository.JobRepo, files *uploads.Store, cleanup *jobs.WorkerPool) *ApplicantsHandler {
	return &ApplicantsHandler{applicantRepo: ar, jobRepo: jr, files: files, cleanup: cleanup}
}

type applicantListResponse struct {
	Applicants []models.Applicant `json:"applicants"`
	Page       int                `json:"page"`
	Pages      int                `json:"pages"`
	Total      int64              `json:"total"`
}

func (h *ApplicantsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := 1
	if p := q.Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	f := repository.ApplicantFilter{
		Status:   q.Get("status"),
		JobID:    q.Get("jobId"),
		Source:   q.Get("source"),
		Search:   q.Get("search"),
		Page:     page,
		PageSize: defaultPageSize,
	}

	applicants, total, err := h.applicantRepo.ListApplicants(r.Context(), f)
	if err != nil {
		writeServerError(w, err)
		return
	}

	pages := int((total + defaultPageSize - 1) / defaultPageSize)
	writeJSON(w, applicantListResponse{
		Applicants: applicants,
		Page:       page,
		Pages:      pages,
		Total:      total,
	}, http.StatusOK)
}

func (h *ApplicantsHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]
	applicants, err := h.applicantRepo.ListApplicantsByJob(r.Context(), jobID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, applicants, http.StatusOK)
}

func (h *ApplicantsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	a, err := h.applicantRepo.GetApplicantByID(r.Context(), id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "applicant not found")
		return
	}
	writeJSON(w, a, http.StatusOK)
}

// Create is the public application-submission endpoint: multipart form with
// a mandatory resume file.
func (h *ApplicantsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploads.MaxResumeSize); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form")
		return
	}

	a := models.Applicant{
		Name:   strings.TrimSpace(r.FormValue("name")),
		Email:  strings.TrimSpace(r.FormValue("email")),
		Phone:  strings.TrimSpace(r.FormValue("phone")),
		JobID:  strings.TrimSpace(r.FormValue("jobId")),
		Status: models.ApplicantPending,
		Source: models.ApplicantSource(r.FormValue("source")),
		Notes:  r.FormValue("notes"),
	}
	if a.Source == "" {
		a.Source = models.SourceOther
	}
	if err := models.Validate(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid applicant: "+err.Error())
		return
	}

	ctx := r.Context()
	job, err := h.jobRepo.GetJobByID(ctx, a.JobID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	existing, err := h.applicantRepo.GetApplicantByEmailAndJob(ctx, a.Email, a.JobID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, "you have already applied for this job")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	name, err := h.files.Save(file, header)
	if err != nil {
		if errors.Is(err, uploads.ErrBadExtension) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeServerError(w, err)
		return
	}
	a.ResumeURL = "/uploads/" + name
	a.AppliedDate = time.Now().UTC().Format(time.RFC3339)

	id, err := h.applicantRepo.CreateApplicant(ctx, &a)
	if err != nil {
		// a concurrent duplicate slips past the pre-check; same 400 either way
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "you have already applied for this job")
			return
		}
		writeServerError(w, err)
		return
	}
	a.ID = id
	writeJSON(w, a, http.StatusCreated)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *ApplicantsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status := models.ApplicantStatus(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	a, err := h.applicantRepo.GetApplicantByID(r.Context(), id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "applicant not found")
		return
	}

	a.Status = status
	if err := h.applicantRepo.UpdateApplicant(r.Context(), a); err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, a, http.StatusOK)
}

type notesUpdateRequest struct {
	Notes string `json:"notes"`
}

func (h *ApplicantsHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req notesUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.applicantRepo.GetApplicantByID(r.Context(), id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "applicant not found")
		return
	}

	a.Notes = req.Notes
	if err := h.applicantRepo.UpdateApplicant(r.Context(), a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "applicant not found")
			return
		}
		writeServerError(w, err)
		return
	}
	writeJSON(w, a, http.StatusOK)
}

func (h *ApplicantsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	a, err := h.applicantRepo.GetApplicantByID(r.Context(), id)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "applicant not found")
		return
	}

	if err := h.applicantRepo.DeleteApplicant(r.Context(), id); err != nil {
		writeServerError(w, err)
		return
	}

	// remove the stored resume; missing files are tolerated either way
	if filename := strings.TrimPrefix(a.ResumeURL, "/uploads/"); filename != "" && filename != a.ResumeURL {
		if h.cleanup != nil {
			if _, err := h.cleanup.Enqueue(r.Context(), jobs.TypeResumeDelete, jobs.ResumeDeletePayload{Filename: filename}, 100, 3); err != nil {
				logger.Error("enqueue resume cleanup", slog.Any("err", err))
			}
		} else if h.files != nil {
			if err := h.files.Delete(filename); err != nil {
				logger.Error("delete resume", slog.Any("err", err))
			}
		}
	}

	writeJSON(w, map[string]string{"message": "applicant removed"}, http.StatusOK)
}
