package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riddhisc/hrdash/pkg/ids"
	"github.com/riddhisc/hrdash/pkg/models"
	"github.com/riddhisc/hrdash/pkg/repository"
)

const jobColumns = `id, title, department, location, type, description, requirements, salary_min, salary_max, salary_currency, skills, status, posting_date, closing_date, user_id, created_at, updated_at`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (string, error) {
	if j == nil {
		return "", fmt.Errorf("job is nil")
	}
	if j.ID == "" {
		j.ID = ids.New()
	}
	ts := now()
	j.CreatedAt, j.UpdatedAt = ts, ts

	_, err := r.conn.Exec(ctx, `INSERT INTO jobs (`+jobColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		j.ID, j.Title, j.Department, j.Location, string(j.Type), j.Description, j.Requirements,
		j.Salary.Min, j.Salary.Max, j.Salary.Currency, marshalStrings(j.Skills), string(j.Status),
		j.PostingDate, j.ClosingDate, j.UserID, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}
	return j.ID, nil
}

func (r *SQLiteRepo) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, ids.Normalize(id))
	j, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

func (r *SQLiteRepo) ListJobs(ctx context.Context, f repository.JobFilter) ([]models.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Type != "" {
		q += ` AND type = ?`
		args = append(args, f.Type)
	}
	if f.Search != "" {
		q += ` AND (lower(title) LIKE ? OR lower(department) LIKE ?)`
		pat := "%" + lowerPattern(f.Search) + "%"
		args = append(args, pat, pat)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	out := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}
	j.UpdatedAt = now()
	res, err := r.conn.Exec(ctx, `UPDATE jobs SET title = ?, department = ?, location = ?, type = ?, description = ?, requirements = ?, salary_min = ?, salary_max = ?, salary_currency = ?, skills = ?, status = ?, posting_date = ?, closing_date = ?, updated_at = ? WHERE id = ?`,
		j.Title, j.Department, j.Location, string(j.Type), j.Description, j.Requirements,
		j.Salary.Min, j.Salary.Max, j.Salary.Currency, marshalStrings(j.Skills), string(j.Status),
		j.PostingDate, j.ClosingDate, j.UpdatedAt, ids.Normalize(j.ID))
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id string) error {
	// No cascade: dependent applicants keep their job references.
	_, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, ids.Normalize(id))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var (
		j      models.Job
		typ    string
		status string
		skills string
	)
	if err := row.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &typ, &j.Description, &j.Requirements,
		&j.Salary.Min, &j.Salary.Max, &j.Salary.Currency, &skills, &status,
		&j.PostingDate, &j.ClosingDate, &j.UserID, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	j.Type = models.JobType(typ)
	j.Status = models.JobStatus(status)
	j.Skills = unmarshalStrings(skills)
	return &j, nil
}
