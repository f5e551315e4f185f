package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/riddhisc/hrdash/internal/config"
	"github.com/riddhisc/hrdash/internal/db"
	"github.com/riddhisc/hrdash/internal/jobs"
	"github.com/riddhisc/hrdash/internal/oauth"
	"github.com/riddhisc/hrdash/internal/repository/sqlite"
	"github.com/riddhisc/hrdash/internal/uploads"
)

// SetupRoutes wires the REST surface. The cleanup pool may be nil in tests;
// applicant deletion then falls back to synchronous resume removal.
func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB, verifier oauth.TokenVerifier, files *uploads.Store, pool *jobs.WorkerPool) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	SetProduction(cfg.Production())

	// Repository
	repo := sqlite.New(database, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	usersHandler := NewUsersHandler(repo, verifier, cfg.JWTSecret, cfg.TokenDuration)
	jobsHandler := NewJobsHandler(repo)
	applicantsHandler := NewApplicantsHandler(repo, repo, files, pool)
	interviewsHandler := NewInterviewsHandler(repo, repo, repo)

	authMW := JWTAuthMiddlewareWithSecret(cfg.JWTSecret)
	auth := func(h http.HandlerFunc) http.Handler { return authMW(h) }
	admin := func(h http.HandlerFunc) http.Handler { return authMW(AdminOnlyMiddleware(h)) }

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/api/health-check", systemHandler.HealthHandler).Methods("GET")

	// Users
	r.HandleFunc("/api/users", usersHandler.Register).Methods("POST")
	r.HandleFunc("/api/users/login", usersHandler.Login).Methods("POST")
	r.HandleFunc("/api/users/google", usersHandler.GoogleLogin).Methods("POST")
	r.Handle("/api/users/profile", auth(usersHandler.GetProfile)).Methods("GET")
	r.Handle("/api/users/profile", auth(usersHandler.UpdateProfile)).Methods("PUT")
	r.Handle("/api/users", admin(usersHandler.List)).Methods("GET")

	// Jobs
	r.HandleFunc("/api/jobs", jobsHandler.List).Methods("GET")
	r.HandleFunc("/api/jobs/{id}", jobsHandler.Get).Methods("GET")
	r.Handle("/api/jobs", admin(jobsHandler.Create)).Methods("POST")
	r.Handle("/api/jobs/{id}", admin(jobsHandler.Update)).Methods("PUT")
	r.Handle("/api/jobs/{id}", admin(jobsHandler.Delete)).Methods("DELETE")

	// Applicants
	r.HandleFunc("/api/applicants", applicantsHandler.List).Methods("GET")
	r.HandleFunc("/api/applicants/job/{jobId}", applicantsHandler.ListByJob).Methods("GET")
	r.HandleFunc("/api/applicants/{id}", applicantsHandler.Get).Methods("GET")
	r.HandleFunc("/api/applicants", applicantsHandler.Create).Methods("POST")
	r.Handle("/api/applicants/{id}/status", auth(applicantsHandler.UpdateStatus)).Methods("PUT")
	r.Handle("/api/applicants/{id}/notes", auth(applicantsHandler.UpdateNotes)).Methods("PUT")
	r.Handle("/api/applicants/{id}", admin(applicantsHandler.Delete)).Methods("DELETE")

	// Interviews
	r.HandleFunc("/api/interviews", interviewsHandler.List).Methods("GET")
	r.HandleFunc("/api/interviews/applicant/{applicantId}", interviewsHandler.ListByApplicant).Methods("GET")
	r.HandleFunc("/api/interviews/{id}", interviewsHandler.Get).Methods("GET")
	r.Handle("/api/interviews", auth(interviewsHandler.Create)).Methods("POST")
	r.Handle("/api/interviews/{id}", auth(interviewsHandler.Patch)).Methods("PATCH")
	r.Handle("/api/interviews/{id}/status", auth(interviewsHandler.UpdateStatus)).Methods("PUT")
	r.Handle("/api/interviews/{id}/feedback", auth(interviewsHandler.SubmitFeedback)).Methods("PUT")
	r.Handle("/api/interviews/{id}", admin(interviewsHandler.Delete)).Methods("DELETE")

	// Uploaded resumes
	if files != nil {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(files.Dir())))
		r.PathPrefix("/uploads/").Handler(fs).Methods("GET")
	}

	return r
}
