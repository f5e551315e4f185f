package repository

import (
	"context"
	"errors"

	"github.com/riddhisc/hrdash/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookups return (nil, nil) when no record matches; callers translate that
// into their own not-found handling.

// ErrDuplicate is returned when a write violates a uniqueness rule, such as
// a second applicant for the same (email, job) pair or a taken user email.
var ErrDuplicate = errors.New("duplicate record")

// JobFilter narrows job listings.
type JobFilter struct {
	Status string
	Type   string
	Search string
}

// ApplicantFilter narrows and paginates applicant listings. Search is a
// case-insensitive substring match against name and email.
type ApplicantFilter struct {
	Status   string
	JobID    string
	Source   string
	Search   string
	Page     int
	PageSize int
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (string, error)
	GetJobByID(ctx context.Context, id string) (*models.Job, error)
	ListJobs(ctx context.Context, f JobFilter) ([]models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id string) error
}

type ApplicantRepo interface {
	CreateApplicant(ctx context.Context, a *models.Applicant) (string, error)
	GetApplicantByID(ctx context.Context, id string) (*models.Applicant, error)
	GetApplicantByEmailAndJob(ctx context.Context, email, jobID string) (*models.Applicant, error)
	ListApplicants(ctx context.Context, f ApplicantFilter) ([]models.Applicant, int64, error)
	ListApplicantsByJob(ctx context.Context, jobID string) ([]models.Applicant, error)
	UpdateApplicant(ctx context.Context, a *models.Applicant) error
	DeleteApplicant(ctx context.Context, id string) error
}

type InterviewRepo interface {
	CreateInterview(ctx context.Context, iv *models.Interview) (string, error)
	GetInterviewByID(ctx context.Context, id string) (*models.Interview, error)
	ListInterviews(ctx context.Context) ([]models.Interview, error)
	ListInterviewsByApplicant(ctx context.Context, applicantID string) ([]models.Interview, error)
	UpdateInterview(ctx context.Context, iv *models.Interview) error
	DeleteInterview(ctx context.Context, id string) error
}

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (string, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
}
