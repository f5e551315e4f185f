// Package uploads stores applicant resume files on the local filesystem.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxResumeSize caps uploaded resumes at 5 MB.
const MaxResumeSize = 5 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

var ErrBadExtension = errors.New("unsupported resume file type")

// Store writes resume files under a base directory and serves delete
// requests from the cleanup worker.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save persists an uploaded file and returns the stored filename. The name
// is generated server-side so uploads cannot collide or escape the dir.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", ErrBadExtension
	}
	if header.Size > MaxResumeSize {
		return "", fmt.Errorf("resume exceeds %d bytes", MaxResumeSize)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create resume file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, MaxResumeSize+1)); err != nil {
		return "", fmt.Errorf("write resume file: %w", err)
	}
	return name, nil
}

// Delete removes a stored resume. A file that is already absent is not an
// error.
func (s *Store) Delete(name string) error {
	// refuse anything that resolves outside the upload dir
	clean := filepath.Base(name)
	if clean == "." || clean == ".." || clean == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, clean))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete resume file: %w", err)
	}
	return nil
}

// Dir returns the base directory, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}
