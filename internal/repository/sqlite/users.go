package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/riddhisc/hrdash/pkg/ids"
	"github.com/riddhisc/hrdash/pkg/models"
	"github.com/riddhisc/hrdash/pkg/repository"
)

const userColumns = `id, name, email, password_hash, role, google_id, profile, created_at, updated_at`

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (string, error) {
	if u == nil {
		return "", fmt.Errorf("user is nil")
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	ts := now()
	u.CreatedAt, u.UpdatedAt = ts, ts

	profile, err := marshalProfile(u.Profile)
	if err != nil {
		return "", err
	}
	_, err = r.conn.Exec(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?,?,?,?,?,?,?,?,?)`,
		u.ID, u.Name, strings.ToLower(u.Email), u.PasswordHash, string(u.Role),
		nullable(u.GoogleID), profile, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return "", repository.ErrDuplicate
		}
		return "", fmt.Errorf("create user: %w", err)
	}
	return u.ID, nil
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, ids.Normalize(id))
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email)))
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}
	u.UpdatedAt = now()
	profile, err := marshalProfile(u.Profile)
	if err != nil {
		return err
	}
	res, err := r.conn.Exec(ctx, `UPDATE users SET name = ?, email = ?, password_hash = ?, role = ?, google_id = ?, profile = ?, updated_at = ? WHERE id = ?`,
		u.Name, strings.ToLower(u.Email), u.PasswordHash, string(u.Role),
		nullable(u.GoogleID), profile, u.UpdatedAt, ids.Normalize(u.ID))
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func marshalProfile(p *models.Profile) (any, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return string(b), nil
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u        models.User
		role     string
		googleID sql.NullString
		profile  sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &googleID, &profile, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = models.UserRole(role)
	if googleID.Valid {
		u.GoogleID = googleID.String
	}
	if profile.Valid && profile.String != "" {
		var p models.Profile
		if err := json.Unmarshal([]byte(profile.String), &p); err == nil {
			u.Profile = &p
		}
	}
	return &u, nil
}
