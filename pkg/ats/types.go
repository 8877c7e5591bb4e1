package ats

import (
	"strings"
	"time"
)

// Job status values used by the job directory.
const (
	JobStatusActive   = "ACTIVE"
	JobStatusInactive = "INACTIVE"
	JobStatusClosed   = "CLOSED"
	JobStatusOnHold   = "ON_HOLD"
)

type Job struct {
	ID          int64     `json:"id"`
	JobName     string    `json:"jobName"`
	Status      string    `json:"status"`
	SkillsName  string    `json:"skillsname"`
	Location    string    `json:"jobLocation"`
	Experience  string    `json:"jobExperience"`
	Description string    `json:"jobDescription"`
	ClientName  string    `json:"clientName"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsActive reports whether the job is open for matching and keyword search.
func (j Job) IsActive() bool {
	return strings.EqualFold(strings.TrimSpace(j.Status), JobStatusActive)
}

type Candidate struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Status     string    `json:"status"`
	ResumePath string    `json:"resumePath"`
	JobID      int64     `json:"jobId"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FullName joins first and last name, skipping empty parts.
func (c Candidate) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// HasResume reports whether a resume file is attached to the candidate.
func (c Candidate) HasResume() bool {
	return strings.TrimSpace(c.ResumePath) != ""
}

type Application struct {
	ID            int64     `json:"id"`
	CandidateID   int64     `json:"candidateId"`
	CandidateName string    `json:"candidateName"`
	JobID         int64     `json:"jobId"`
	JobName       string    `json:"jobName"`
	Status        string    `json:"status"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Interview struct {
	ID            int64     `json:"id"`
	CandidateID   int64     `json:"candidateId"`
	CandidateName string    `json:"candidateName"`
	JobID         int64     `json:"jobId"`
	JobName       string    `json:"jobName"`
	ClientName    string    `json:"clientName"`
	InterviewDate time.Time `json:"interviewDate"`
	Interviewer   string    `json:"interviewer"`
	Status        string    `json:"status"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Client struct {
	ID            int64  `json:"id"`
	ClientName    string `json:"clientName"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Location      string `json:"location"`
}

// Notification is the payload accepted by the notification service.
type Notification struct {
	Recipient string `json:"recipient"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
}

// BulkEmail is one message fanned out to many recipients.
type BulkEmail struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
}

// BulkEmailResult lists which recipients were accepted by the transport.
type BulkEmailResult struct {
	Sent   []string `json:"sent"`
	Failed []string `json:"failed"`
}
