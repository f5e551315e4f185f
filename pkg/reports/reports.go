// Package reports aggregates loaded records into the counts the dashboard
// renders. Like selectors, everything here is pure and takes an explicit
// evaluation time where one is needed.
package reports

import (
	"time"

	"github.com/riddhisc/hrdash/pkg/ids"
	"github.com/riddhisc/hrdash/pkg/models"
)

// ApplicantCounts breaks the applicant pool down by pipeline stage and by
// where the application came from.
type ApplicantCounts struct {
	Total    int
	ByStatus map[models.ApplicantStatus]int
	BySource map[models.ApplicantSource]int
}

func CountApplicants(applicants []models.Applicant) ApplicantCounts {
	counts := ApplicantCounts{
		Total:    len(applicants),
		ByStatus: map[models.ApplicantStatus]int{},
		BySource: map[models.ApplicantSource]int{},
	}
	for _, a := range applicants {
		counts.ByStatus[a.Status]++
		counts.BySource[a.Source]++
	}
	return counts
}

func CountInterviewsByStatus(interviews []models.Interview) map[models.InterviewStatus]int {
	counts := map[models.InterviewStatus]int{}
	for _, iv := range interviews {
		counts[iv.Status]++
	}
	return counts
}

// JobApplicantCount pairs a job with how many applications it received.
type JobApplicantCount struct {
	JobID string
	Title string
	Count int
}

// ApplicantsPerJob counts applications per job, in job order. Jobs with no
// applicants still appear with a zero count.
func ApplicantsPerJob(jobs []models.Job, applicants []models.Applicant) []JobApplicantCount {
	out := make([]JobApplicantCount, 0, len(jobs))
	for _, j := range jobs {
		count := 0
		for _, a := range applicants {
			if ids.Equal(a.JobID, j.ID) {
				count++
			}
		}
		out = append(out, JobApplicantCount{JobID: j.ID, Title: j.Title, Count: count})
	}
	return out
}

// MonthCount is one point on the application trend line.
type MonthCount struct {
	Label string // "Jan", "Feb", ...
	Year  int
	Count int
}

// ApplicantTrend counts applications per calendar month over the trailing
// six months ending at now's month, oldest first. Applications with an
// unparseable applied date are skipped.
func ApplicantTrend(applicants []models.Applicant, now time.Time) []MonthCount {
	type key struct {
		year  int
		month time.Month
	}

	months := make([]key, 0, 6)
	cursor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
	for i := 0; i < 6; i++ {
		months = append(months, key{cursor.Year(), cursor.Month()})
		cursor = cursor.AddDate(0, 1, 0)
	}

	counts := map[key]int{}
	for _, a := range applicants {
		applied, err := time.Parse(time.RFC3339, a.AppliedDate)
		if err != nil {
			applied, err = time.Parse("2006-01-02", a.AppliedDate)
			if err != nil {
				continue
			}
		}
		counts[key{applied.Year(), applied.Month()}]++
	}

	out := make([]MonthCount, 0, 6)
	for _, k := range months {
		out = append(out, MonthCount{
			Label: k.month.String()[:3],
			Year:  k.year,
			Count: counts[k],
		})
	}
	return out
}
