package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/riddhisc/hrdash/pkg/ids"
	"github.com/riddhisc/hrdash/pkg/models"
	"github.com/riddhisc/hrdash/pkg/repository"
)

const applicantColumns = `id, name, email, phone, job_id, status, source, resume_url, applied_date, notes, created_at, updated_at`

func (r *SQLiteRepo) CreateApplicant(ctx context.Context, a *models.Applicant) (string, error) {
	if a == nil {
		return "", fmt.Errorf("applicant is nil")
	}
	if a.ID == "" {
		a.ID = ids.New()
	}
	ts := now()
	a.CreatedAt, a.UpdatedAt = ts, ts

	_, err := r.conn.Exec(ctx, `INSERT INTO applicants (`+applicantColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID, a.Name, strings.ToLower(a.Email), a.Phone, ids.Normalize(a.JobID), string(a.Status), string(a.Source),
		a.ResumeURL, a.AppliedDate, a.Notes, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return "", repository.ErrDuplicate
		}
		return "", fmt.Errorf("create applicant: %w", err)
	}
	return a.ID, nil
}

func (r *SQLiteRepo) GetApplicantByID(ctx context.Context, id string) (*models.Applicant, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE id = ?`, ids.Normalize(id))
	a, err := scanApplicant(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get applicant: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepo) GetApplicantByEmailAndJob(ctx context.Context, email, jobID string) (*models.Applicant, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE email = ? AND job_id = ?`,
		strings.ToLower(strings.TrimSpace(email)), ids.Normalize(jobID))
	a, err := scanApplicant(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get applicant by email+job: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepo) ListApplicants(ctx context.Context, f repository.ApplicantFilter) ([]models.Applicant, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		where += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.JobID != "" {
		where += ` AND job_id = ?`
		args = append(args, ids.Normalize(f.JobID))
	}
	if f.Source != "" {
		where += ` AND source = ?`
		args = append(args, f.Source)
	}
	if f.Search != "" {
		where += ` AND (lower(name) LIKE ? OR lower(email) LIKE ?)`
		pat := "%" + lowerPattern(f.Search) + "%"
		args = append(args, pat, pat)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM applicants`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count applicants: %w", err)
	}

	q := `SELECT ` + applicantColumns + ` FROM applicants` + where + ` ORDER BY created_at DESC`
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q += ` LIMIT ? OFFSET ?`
		args = append(args, f.PageSize, (page-1)*f.PageSize)
	}

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	out := []models.Applicant{}
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan applicant: %w", err)
		}
		out = append(out, *a)
	}
	return out, total, rows.Err()
}

func (r *SQLiteRepo) ListApplicantsByJob(ctx context.Context, jobID string) ([]models.Applicant, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicantColumns+` FROM applicants WHERE job_id = ? ORDER BY created_at DESC`, ids.Normalize(jobID))
	if err != nil {
		return nil, fmt.Errorf("list applicants by job: %w", err)
	}
	defer rows.Close()

	out := []models.Applicant{}
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan applicant: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateApplicant(ctx context.Context, a *models.Applicant) error {
	if a == nil {
		return fmt.Errorf("applicant is nil")
	}
	a.UpdatedAt = now()
	res, err := r.conn.Exec(ctx, `UPDATE applicants SET name = ?, email = ?, phone = ?, job_id = ?, status = ?, source = ?, resume_url = ?, applied_date = ?, notes = ?, updated_at = ? WHERE id = ?`,
		a.Name, strings.ToLower(a.Email), a.Phone, ids.Normalize(a.JobID), string(a.Status), string(a.Source),
		a.ResumeURL, a.AppliedDate, a.Notes, a.UpdatedAt, ids.Normalize(a.ID))
	if err != nil {
		return fmt.Errorf("update applicant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQLiteRepo) DeleteApplicant(ctx context.Context, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM applicants WHERE id = ?`, ids.Normalize(id))
	return err
}

func scanApplicant(row rowScanner) (*models.Applicant, error) {
	var (
		a      models.Applicant
		status string
		source string
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.JobID, &status, &source,
		&a.ResumeURL, &a.AppliedDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Status = models.ApplicantStatus(status)
	a.Source = models.ApplicantSource(source)
	return &a, nil
}
