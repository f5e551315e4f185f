// Package selectors filters already-loaded records in memory. Every function
// is pure: no I/O, and time-dependent filters take the evaluation time as an
// argument so they can be tested against a fixed clock.
package selectors

import (
	"strings"
	"time"

	"github.com/riddhisc/hrdash/pkg/ids"
	"github.com/riddhisc/hrdash/pkg/models"
)

// DateBucket names a relative scheduling window.
type DateBucket string

const (
	BucketToday     DateBucket = "today"
	BucketTomorrow  DateBucket = "tomorrow"
	BucketThisWeek  DateBucket = "thisWeek"
	BucketNextWeek  DateBucket = "nextWeek"
	BucketThisMonth DateBucket = "thisMonth"
	BucketNextMonth DateBucket = "nextMonth"
)

func InterviewsByStatus(interviews []models.Interview, status models.InterviewStatus) []models.Interview {
	out := []models.Interview{}
	for _, iv := range interviews {
		if iv.Status == status {
			out = append(out, iv)
		}
	}
	return out
}

func InterviewsByType(interviews []models.Interview, typ models.InterviewType) []models.Interview {
	out := []models.Interview{}
	for _, iv := range interviews {
		if iv.Type == typ {
			out = append(out, iv)
		}
	}
	return out
}

func InterviewsByApplicant(interviews []models.Interview, applicantID string) []models.Interview {
	out := []models.Interview{}
	for _, iv := range interviews {
		if ids.Equal(iv.ApplicantID, applicantID) {
			out = append(out, iv)
		}
	}
	return out
}

// SearchInterviews matches the query case-insensitively against applicant
// name, job title, type and location.
func SearchInterviews(interviews []models.Interview, query string) []models.Interview {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return interviews
	}
	out := []models.Interview{}
	for _, iv := range interviews {
		hay := strings.ToLower(iv.ApplicantName + " " + iv.JobTitle + " " + string(iv.Type) + " " + iv.Location)
		if strings.Contains(hay, q) {
			out = append(out, iv)
		}
	}
	return out
}

// startOfWeek truncates to the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// inBucket decides membership relative to now. Week windows start on Monday.
// Month buckets compare the calendar month only, not the year.
func inBucket(date time.Time, bucket DateBucket, now time.Time) bool {
	date = date.In(now.Location())
	switch bucket {
	case BucketToday:
		return sameDay(date, now)
	case BucketTomorrow:
		return sameDay(date, now.AddDate(0, 0, 1))
	case BucketThisWeek:
		start := startOfWeek(now)
		return !date.Before(start) && date.Before(start.AddDate(0, 0, 7))
	case BucketNextWeek:
		start := startOfWeek(now).AddDate(0, 0, 7)
		return !date.Before(start) && date.Before(start.AddDate(0, 0, 7))
	case BucketThisMonth:
		return date.Month() == now.Month()
	case BucketNextMonth:
		next := now.AddDate(0, 1, 0)
		return date.Month() == next.Month()
	}
	return false
}

// InterviewsByDateBucket keeps the interviews whose date falls in the bucket
// relative to now. Records with unparseable dates are skipped.
func InterviewsByDateBucket(interviews []models.Interview, bucket DateBucket, now time.Time) []models.Interview {
	out := []models.Interview{}
	for _, iv := range interviews {
		date, err := time.Parse(time.RFC3339, iv.Date)
		if err != nil {
			date, err = time.Parse("2006-01-02", iv.Date)
			if err != nil {
				continue
			}
		}
		if inBucket(date, bucket, now) {
			out = append(out, iv)
		}
	}
	return out
}

func JobsByStatus(jobs []models.Job, status models.JobStatus) []models.Job {
	out := []models.Job{}
	for _, j := range jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out
}

func SearchJobs(jobs []models.Job, query string) []models.Job {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return jobs
	}
	out := []models.Job{}
	for _, j := range jobs {
		hay := strings.ToLower(j.Title + " " + j.Department + " " + j.Location)
		if strings.Contains(hay, q) {
			out = append(out, j)
		}
	}
	return out
}

func ApplicantsByStatus(applicants []models.Applicant, status models.ApplicantStatus) []models.Applicant {
	out := []models.Applicant{}
	for _, a := range applicants {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

func ApplicantsByJob(applicants []models.Applicant, jobID string) []models.Applicant {
	out := []models.Applicant{}
	for _, a := range applicants {
		if ids.Equal(a.JobID, jobID) {
			out = append(out, a)
		}
	}
	return out
}
