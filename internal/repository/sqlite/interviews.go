package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/riddhisc/hrdash/pkg/ids"
	"github.com/riddhisc/hrdash/pkg/models"
)

const interviewColumns = `id, applicant_id, job_id, interviewers, date, time, duration, type, location, status, feedback, notes, applicant_name, job_title, created_at, updated_at`

func (r *SQLiteRepo) CreateInterview(ctx context.Context, iv *models.Interview) (string, error) {
	if iv == nil {
		return "", fmt.Errorf("interview is nil")
	}
	if iv.ID == "" {
		iv.ID = ids.New()
	}
	if iv.Status == "" {
		iv.Status = models.InterviewScheduled
	}
	ts := now()
	iv.CreatedAt, iv.UpdatedAt = ts, ts

	fb, err := marshalFeedback(iv.Feedback)
	if err != nil {
		return "", err
	}
	_, err = r.conn.Exec(ctx, `INSERT INTO interviews (`+interviewColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		iv.ID, ids.Normalize(iv.ApplicantID), ids.Normalize(iv.JobID), marshalStrings(iv.Interviewers),
		iv.Date, iv.Time, iv.Duration, string(iv.Type), iv.Location, string(iv.Status),
		fb, iv.Notes, iv.ApplicantName, iv.JobTitle, iv.CreatedAt, iv.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("create interview: %w", err)
	}
	return iv.ID, nil
}

func (r *SQLiteRepo) GetInterviewByID(ctx context.Context, id string) (*models.Interview, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = ?`, ids.Normalize(id))
	iv, err := scanInterview(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get interview: %w", err)
	}
	return iv, nil
}

func (r *SQLiteRepo) ListInterviews(ctx context.Context) ([]models.Interview, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+interviewColumns+` FROM interviews ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer rows.Close()

	out := []models.Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		out = append(out, *iv)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) ListInterviewsByApplicant(ctx context.Context, applicantID string) ([]models.Interview, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE applicant_id = ? ORDER BY date ASC`, ids.Normalize(applicantID))
	if err != nil {
		return nil, fmt.Errorf("list interviews by applicant: %w", err)
	}
	defer rows.Close()

	out := []models.Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		out = append(out, *iv)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateInterview(ctx context.Context, iv *models.Interview) error {
	if iv == nil {
		return fmt.Errorf("interview is nil")
	}
	iv.UpdatedAt = now()
	fb, err := marshalFeedback(iv.Feedback)
	if err != nil {
		return err
	}
	res, err := r.conn.Exec(ctx, `UPDATE interviews SET applicant_id = ?, job_id = ?, interviewers = ?, date = ?, time = ?, duration = ?, type = ?, location = ?, status = ?, feedback = ?, notes = ?, applicant_name = ?, job_title = ?, updated_at = ? WHERE id = ?`,
		ids.Normalize(iv.ApplicantID), ids.Normalize(iv.JobID), marshalStrings(iv.Interviewers),
		iv.Date, iv.Time, iv.Duration, string(iv.Type), iv.Location, string(iv.Status),
		fb, iv.Notes, iv.ApplicantName, iv.JobTitle, iv.UpdatedAt, ids.Normalize(iv.ID))
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQLiteRepo) DeleteInterview(ctx context.Context, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM interviews WHERE id = ?`, ids.Normalize(id))
	return err
}

func marshalFeedback(fb *models.Feedback) (any, error) {
	if fb == nil {
		return nil, nil
	}
	b, err := json.Marshal(fb)
	if err != nil {
		return nil, fmt.Errorf("marshal feedback: %w", err)
	}
	return string(b), nil
}

func scanInterview(row rowScanner) (*models.Interview, error) {
	var (
		iv           models.Interview
		interviewers string
		typ          string
		status       string
		feedback     sql.NullString
	)
	if err := row.Scan(&iv.ID, &iv.ApplicantID, &iv.JobID, &interviewers, &iv.Date, &iv.Time,
		&iv.Duration, &typ, &iv.Location, &status, &feedback, &iv.Notes,
		&iv.ApplicantName, &iv.JobTitle, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
		return nil, err
	}
	iv.Interviewers = unmarshalStrings(interviewers)
	iv.Type = models.InterviewType(typ)
	iv.Status = models.InterviewStatus(status)
	if feedback.Valid && feedback.String != "" {
		var fb models.Feedback
		if err := json.Unmarshal([]byte(feedback.String), &fb); err == nil {
			iv.Feedback = &fb
		}
	}
	return &iv, nil
}
