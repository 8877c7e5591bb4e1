package ats

import "context"

// JobDirectory is the read side of the job backend plus status updates.
type JobDirectory interface {
	ListJobs(ctx context.Context) ([]Job, error)
	SearchJobs(ctx context.Context, term string) ([]Job, error)
	GetJob(ctx context.Context, id int64) (*Job, error)
	UpdateJobStatus(ctx context.Context, id int64, status string) error
}

type CandidateDirectory interface {
	ListCandidates(ctx context.Context) ([]Candidate, error)
	SearchCandidates(ctx context.Context, term string) ([]Candidate, error)
	GetCandidate(ctx context.Context, id int64) (*Candidate, error)
	CandidatesByStatus(ctx context.Context, status string) ([]Candidate, error)
	CountCandidates(ctx context.Context) (int, error)
}

type ApplicationDirectory interface {
	ListApplications(ctx context.Context) ([]Application, error)
	CountApplications(ctx context.Context) (int, error)
}

type InterviewDirectory interface {
	ListInterviews(ctx context.Context) ([]Interview, error)
	CountInterviews(ctx context.Context) (int, error)
}

type ClientDirectory interface {
	SearchClients(ctx context.Context, term string) ([]Client, error)
}

type NotificationService interface {
	CreateNotification(ctx context.Context, n Notification) error
}

// CandidateEmailService sends one e-mail to many candidates and reports
// per-recipient outcomes.
type CandidateEmailService interface {
	SendBulkEmail(ctx context.Context, email BulkEmail) (*BulkEmailResult, error)
}

// ChatBackend answers free text the rule table could not classify.
type ChatBackend interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// Directories groups every read collaborator the assistant consults.
type Directories struct {
	Jobs         JobDirectory
	Candidates   CandidateDirectory
	Applications ApplicationDirectory
	Interviews   InterviewDirectory
	Clients      ClientDirectory
}
