// Package models holds the domain records shared by the server and the
// client library. Domain dates travel as RFC 3339 strings; bookkeeping
// timestamps (created/updated) are unix milliseconds.
package models

// JobType enumerates employment arrangements.
type JobType string

const (
	JobFullTime   JobType = "full-time"
	JobPartTime   JobType = "part-time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
	JobRemote     JobType = "remote"
)

func (t JobType) Valid() bool {
	switch t {
	case JobFullTime, JobPartTime, JobContract, JobInternship, JobRemote:
		return true
	}
	return false
}

// JobStatus enumerates posting states.
type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
	JobDraft  JobStatus = "draft"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobOpen, JobClosed, JobDraft:
		return true
	}
	return false
}

// ApplicantStatus enumerates pipeline stages. Transitions are plain field
// writes; no ordering is enforced.
type ApplicantStatus string

const (
	ApplicantPending     ApplicantStatus = "pending"
	ApplicantShortlisted ApplicantStatus = "shortlisted"
	ApplicantInterview   ApplicantStatus = "interview"
	ApplicantHired       ApplicantStatus = "hired"
	ApplicantRejected    ApplicantStatus = "rejected"
)

func (s ApplicantStatus) Valid() bool {
	switch s {
	case ApplicantPending, ApplicantShortlisted, ApplicantInterview, ApplicantHired, ApplicantRejected:
		return true
	}
	return false
}

// ApplicantSource enumerates where an application came from.
type ApplicantSource string

const (
	SourceLinkedIn ApplicantSource = "linkedin"
	SourceIndeed   ApplicantSource = "indeed"
	SourceCompany  ApplicantSource = "company"
	SourceReferral ApplicantSource = "referral"
	SourceOther    ApplicantSource = "other"
)

func (s ApplicantSource) Valid() bool {
	switch s {
	case SourceLinkedIn, SourceIndeed, SourceCompany, SourceReferral, SourceOther:
		return true
	}
	return false
}

// InterviewType enumerates interview formats.
type InterviewType string

const (
	InterviewPhone     InterviewType = "phone"
	InterviewVideo     InterviewType = "video"
	InterviewInPerson  InterviewType = "in-person"
	InterviewTechnical InterviewType = "technical"
	InterviewHR        InterviewType = "hr"
)

func (t InterviewType) Valid() bool {
	switch t {
	case InterviewPhone, InterviewVideo, InterviewInPerson, InterviewTechnical, InterviewHR:
		return true
	}
	return false
}

// InterviewStatus is a closed set with no transition graph: any status may
// be set from any other. "completed" is additionally entered as a side
// effect of feedback submission.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

func (s InterviewStatus) Valid() bool {
	switch s {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled:
		return true
	}
	return false
}

// Recommendation enumerates feedback outcomes.
type Recommendation string

const (
	RecommendHire     Recommendation = "hire"
	RecommendReject   Recommendation = "reject"
	RecommendConsider Recommendation = "consider"
)

func (r Recommendation) Valid() bool {
	switch r {
	case RecommendHire, RecommendReject, RecommendConsider:
		return true
	}
	return false
}

// SalaryRange: max exceeding min is a UI-layer concern only, not enforced
// here.
type SalaryRange struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

type Job struct {
	ID           string      `json:"id"`
	Title        string      `json:"title" validate:"required"`
	Department   string      `json:"department" validate:"required"`
	Location     string      `json:"location" validate:"required"`
	Type         JobType     `json:"type" validate:"required,oneof=full-time part-time contract internship remote"`
	Description  string      `json:"description"`
	Requirements string      `json:"requirements"`
	Salary       SalaryRange `json:"salary"`
	Skills       []string    `json:"skills"`
	Status       JobStatus   `json:"status" validate:"required,oneof=open closed draft"`
	PostingDate  string      `json:"postingDate"`
	ClosingDate  string      `json:"closingDate" validate:"required"`
	UserID       string      `json:"userId"`
	CreatedAt    int64       `json:"createdAt"`
	UpdatedAt    int64       `json:"updatedAt"`
}

type Applicant struct {
	ID          string          `json:"id"`
	Name        string          `json:"name" validate:"required"`
	Email       string          `json:"email" validate:"required,email"`
	Phone       string          `json:"phone"`
	JobID       string          `json:"jobId" validate:"required"`
	Status      ApplicantStatus `json:"status" validate:"required,oneof=pending shortlisted interview hired rejected"`
	Source      ApplicantSource `json:"source" validate:"required,oneof=linkedin indeed company referral other"`
	ResumeURL   string          `json:"resumeUrl"`
	AppliedDate string          `json:"appliedDate"`
	Notes       string          `json:"notes"`
	CreatedAt   int64           `json:"createdAt"`
	UpdatedAt   int64           `json:"updatedAt"`
}

// Feedback is an optional sub-record; validation runs only when present.
type Feedback struct {
	Rating         int            `json:"rating" validate:"required,min=1,max=5"`
	Strengths      string         `json:"strengths"`
	Weaknesses     string         `json:"weaknesses"`
	Notes          string         `json:"notes"`
	Recommendation Recommendation `json:"recommendation" validate:"required,oneof=hire reject consider"`
}

type Interview struct {
	ID           string          `json:"id"`
	ApplicantID  string          `json:"applicantId" validate:"required"`
	JobID        string          `json:"jobId"`
	Interviewers []string        `json:"interviewers"`
	Date         string          `json:"date" validate:"required"`
	Time         string          `json:"time"`
	Duration     int             `json:"duration"`
	Type         InterviewType   `json:"type" validate:"omitempty,oneof=phone video in-person technical hr"`
	Location     string          `json:"location"`
	Status       InterviewStatus `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Feedback     *Feedback       `json:"feedback,omitempty"`
	Notes        string          `json:"notes"`

	// Denormalized display fields resolved at creation time.
	ApplicantName string `json:"applicantName"`
	JobTitle      string `json:"jobTitle"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// UserRole distinguishes recruiters from admins.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type WorkHistory struct {
	Company string `json:"company"`
	Title   string `json:"title"`
	From    string `json:"from"`
	To      string `json:"to"`
	Summary string `json:"summary"`
}

type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type Profile struct {
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Address   string        `json:"address"`
	Bio       string        `json:"bio"`
	Skills    []string      `json:"skills"`
	Work      []WorkHistory `json:"work"`
	Education []Education   `json:"education"`
}

type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	// GoogleID is set for OAuth-provisioned accounts, which carry no password.
	GoogleID  string   `json:"googleId,omitempty"`
	Profile   *Profile `json:"profile,omitempty"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}
