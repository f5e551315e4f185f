// Package mock provides in-memory repository implementations for handler
// tests.
package mock

import (
	"context"
	"strings"

	"github.com/riddhisc/hrdash/pkg/ids"
	"github.com/riddhisc/hrdash/pkg/models"
	"github.com/riddhisc/hrdash/pkg/repository"
)

type Mocks struct {
	Jobs       *JobRepo
	Applicants *ApplicantRepo
	Interviews *InterviewRepo
	Users      *UserRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Jobs:       &JobRepo{},
		Applicants: &ApplicantRepo{},
		Interviews: &InterviewRepo{},
		Users:      &UserRepo{},
	}
}

type JobRepo struct {
	Stored    []models.Job
	CreateErr error
}

var _ repository.JobRepo = (*JobRepo)(nil)

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	if j.ID == "" {
		j.ID = ids.New()
	}
	m.Stored = append(m.Stored, *j)
	return j.ID, nil
}

func (m *JobRepo) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	for i := range m.Stored {
		if ids.Equal(m.Stored[i].ID, id) {
			j := m.Stored[i]
			return &j, nil
		}
	}
	return nil, nil
}

func (m *JobRepo) ListJobs(ctx context.Context, f repository.JobFilter) ([]models.Job, error) {
	out := []models.Job{}
	for _, j := range m.Stored {
		if f.Status != "" && string(j.Status) != f.Status {
			continue
		}
		if f.Type != "" && string(j.Type) != f.Type {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (m *JobRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	for i := range m.Stored {
		if ids.Equal(m.Stored[i].ID, j.ID) {
			m.Stored[i] = *j
			return nil
		}
	}
	return nil
}

func (m *JobRepo) DeleteJob(ctx context.Context, id string) error {
	for i := range m.Stored {
		if ids.Equal(m.Stored[i].ID, id) {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

type ApplicantRepo struct {
	Stored    []models.Applicant
	CreateErr error
	UpdateErr error
}

var _ repository.ApplicantRepo = (*ApplicantRepo)(nil)

func (m *ApplicantRepo) CreateApplicant(ctx context.Context, a *models.Applicant) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	for _, e := range m.Stored {
		if strings.EqualFold(e.Email, a.Email) && ids.Equal(e.JobID, a.JobID) {
			return "", repository.ErrDuplicate
		}
	}
	if a.ID == "" {
		a.ID = ids.New()
	}
	m.Stored = append(m.Stored, *a)
	return a.ID, nil
}

func (m *ApplicantRepo) GetApplicantByID(ctx context.Context, id string) (*models.Applicant, error) {
	for i := range m.Stored {
		if ids.Equal(m.Stored[i].ID, id) {
			a := m.Stored[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *ApplicantRepo) GetApplicantByEmailAndJob(ctx context.Context, email, jobID string) (*models.Applicant, error) {
	for i := range m.Stored {
		if strings.EqualFold(m.Stored[i].Email, email) && ids.Equal(m.Stored[i].JobID, jobID) {
			a := m.Stored[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *ApplicantRepo) ListApplicants(ctx context.Context, f repository.ApplicantFilter) ([]models.Applicant, int64, error) {
	out := []models.Applicant{}
	for _, a := range m.Stored {
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		if f.JobID != "" && !ids.Equal(a.JobID, f.JobID) {
			continue
		}
		if f.Source != "" && string(a.Source) != f.Source {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(a.Name), s) && !strings.Contains(strings.ToLower(a.Email), s) {
				continue
			}
		}
		out = append(out, a)
	}
	total := int64(len(out))
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * f.PageSize
		if start > len(out) {
			start = len(out)
		}
		end := start + f.PageSize
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

func (m *ApplicantRepo) ListApplicantsByJob(ctx context.Context, jobID string) ([]models.Applicant, error) {
	out := []models.Applicant{}
	for _, a := range m.Stored {
		if ids.Equal(a.JobID, jobID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *ApplicantRepo) UpdateApplicant(ctx context.Context, a *models.Applicant) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i := range m.Stored {
		if ids.Equal(m.Stored[i].ID, a.ID) {
			m.Stored[i] = *a
			return nil
		}
	}
	return nil
}

func (m *ApplicantRepo) DeleteApplicant(ctx context.Context, id string) error {
	for i := range m.Stored {
		if ids.Equal(m.Stored[i].ID, id) {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

type InterviewRepo struct {
	Stored    []models.Interview
	CreateErr error
	UpdateErr error
}

var _ repository.InterviewRepo = (*InterviewRepo)(nil)

func (m *InterviewRepo) CreateInterview(ctx context.Context, iv *models.Interview) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	if iv.ID == "" {
		iv.ID = ids.New()
	}
	if iv.Status == "" {
		iv.Status = models.InterviewScheduled
	}
	m.Stored = append(m.Stored, *iv)
	return iv.ID, nil
}

func (m *InterviewRepo) GetInterviewByID(ctx context.Context, id string) (*models.Interview, error) {
	for i := range m.Stored {
		if ids.Equal(m.Stored[i].ID, id) {
			iv := m.Stored[i]
			return &iv, nil
		}
	}
	return nil, nil
}

func (m *InterviewRepo) ListInterviews(ctx context.Context) ([]models.Interview, error) {
	return append([]models.Interview{}, m.Stored...), nil
}

func (m *InterviewRepo) ListInterviewsByApplicant(ctx context.Context, applicantID string) ([]models.Interview, error) {
	out := []models.Interview{}
	for _, iv := range m.Stored {
		if ids.Equal(iv.ApplicantID, applicantID) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *InterviewRepo) UpdateInterview(ctx context.Context, iv *models.Interview) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i := range m.Stored {
		if ids.Equal(m.Stored[i].ID, iv.ID) {
			m.Stored[i] = *iv
			return nil
		}
	}
	return nil
}

func (m *InterviewRepo) DeleteInterview(ctx context.Context, id string) error {
	for i := range m.Stored {
		if ids.Equal(m.Stored[i].ID, id) {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

type UserRepo struct {
	Stored    []models.User
	CreateErr error
}

var _ repository.UserRepo = (*UserRepo)(nil)

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	for _, e := range m.Stored {
		if strings.EqualFold(e.Email, u.Email) {
			return "", repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	m.Stored = append(m.Stored, *u)
	return u.ID, nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	for i := range m.Stored {
		if ids.Equal(m.Stored[i].ID, id) {
			u := m.Stored[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range m.Stored {
		if strings.EqualFold(m.Stored[i].Email, email) {
			u := m.Stored[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	return append([]models.User{}, m.Stored...), nil
}

func (m *UserRepo) UpdateUser(ctx context.Context, u *models.User) error {
	for i := range m.Stored {
		if ids.Equal(m.Stored[i].ID, u.ID) {
			m.Stored[i] = *u
			return nil
		}
	}
	return nil
}
