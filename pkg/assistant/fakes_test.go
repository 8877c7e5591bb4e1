package assistant

import (
	"context"
	"strings"
	"sync"
	"time"

	"ats-assistant-be/pkg/ats"
)

// testNow is Wednesday, January 15, 2025, 10:00 UTC.
var testNow = time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.January, day, hour, minute, 0, 0, time.UTC)
}

// fakeATS is an in-memory ATS backend. errs fails a single method by name;
// err fails every read.
type fakeATS struct {
	jobs         []ats.Job
	candidates   []ats.Candidate
	applications []ats.Application
	interviews   []ats.Interview
	clients      []ats.Client

	err  error
	errs map[string]error

	notifyFail    map[string]bool
	notifications []ats.Notification

	emailResult *ats.BulkEmailResult
	emailErr    error
	emails      []ats.BulkEmail

	chatReply string
	chatErr   error

	mu    sync.Mutex
	calls []string
}

func (f *fakeATS) call(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if err, ok := f.errs[name]; ok {
		return err
	}
	return f.err
}

func (f *fakeATS) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (f *fakeATS) directories() ats.Directories {
	return ats.Directories{Jobs: f, Candidates: f, Applications: f, Interviews: f, Clients: f}
}

func (f *fakeATS) ListJobs(context.Context) ([]ats.Job, error) {
	if err := f.call("ListJobs"); err != nil {
		return nil, err
	}
	return f.jobs, nil
}

func (f *fakeATS) SearchJobs(_ context.Context, term string) ([]ats.Job, error) {
	if err := f.call("SearchJobs"); err != nil {
		return nil, err
	}
	return filter(f.jobs, func(j ats.Job) bool {
		return strings.Contains(strings.ToLower(j.JobName), strings.ToLower(term))
	}), nil
}

func (f *fakeATS) GetJob(_ context.Context, id int64) (*ats.Job, error) {
	if err := f.call("GetJob"); err != nil {
		return nil, err
	}
	for _, j := range f.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, ats.ErrNotFound
}

func (f *fakeATS) UpdateJobStatus(_ context.Context, id int64, status string) error {
	if err := f.call("UpdateJobStatus"); err != nil {
		return err
	}
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			f.jobs[i].Status = status
			return nil
		}
	}
	return ats.ErrNotFound
}

func (f *fakeATS) ListCandidates(context.Context) ([]ats.Candidate, error) {
	if err := f.call("ListCandidates"); err != nil {
		return nil, err
	}
	return f.candidates, nil
}

func (f *fakeATS) SearchCandidates(_ context.Context, term string) ([]ats.Candidate, error) {
	if err := f.call("SearchCandidates"); err != nil {
		return nil, err
	}
	return filter(f.candidates, func(c ats.Candidate) bool {
		return strings.Contains(strings.ToLower(c.FullName()), strings.ToLower(term))
	}), nil
}

func (f *fakeATS) GetCandidate(_ context.Context, id int64) (*ats.Candidate, error) {
	if err := f.call("GetCandidate"); err != nil {
		return nil, err
	}
	for _, c := range f.candidates {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, ats.ErrNotFound
}

func (f *fakeATS) CandidatesByStatus(_ context.Context, status string) ([]ats.Candidate, error) {
	if err := f.call("CandidatesByStatus"); err != nil {
		return nil, err
	}
	return filter(f.candidates, func(c ats.Candidate) bool { return c.Status == status }), nil
}

func (f *fakeATS) CountCandidates(context.Context) (int, error) {
	if err := f.call("CountCandidates"); err != nil {
		return 0, err
	}
	return len(f.candidates), nil
}

func (f *fakeATS) ListApplications(context.Context) ([]ats.Application, error) {
	if err := f.call("ListApplications"); err != nil {
		return nil, err
	}
	return f.applications, nil
}

func (f *fakeATS) CountApplications(context.Context) (int, error) {
	if err := f.call("CountApplications"); err != nil {
		return 0, err
	}
	return len(f.applications), nil
}

func (f *fakeATS) ListInterviews(context.Context) ([]ats.Interview, error) {
	if err := f.call("ListInterviews"); err != nil {
		return nil, err
	}
	return f.interviews, nil
}

func (f *fakeATS) CountInterviews(context.Context) (int, error) {
	if err := f.call("CountInterviews"); err != nil {
		return 0, err
	}
	return len(f.interviews), nil
}

func (f *fakeATS) SearchClients(_ context.Context, term string) ([]ats.Client, error) {
	if err := f.call("SearchClients"); err != nil {
		return nil, err
	}
	return filter(f.clients, func(c ats.Client) bool {
		return strings.Contains(strings.ToLower(c.ClientName), strings.ToLower(term))
	}), nil
}

func (f *fakeATS) CreateNotification(_ context.Context, n ats.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.notifyFail[n.Recipient] {
		return ats.ErrNotFound
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeATS) SendBulkEmail(_ context.Context, email ats.BulkEmail) (*ats.BulkEmailResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, email)
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	if f.emailResult != nil {
		return f.emailResult, nil
	}
	return &ats.BulkEmailResult{Sent: email.Recipients}, nil
}

func (f *fakeATS) SendMessage(_ context.Context, _ string) (string, error) {
	return f.chatReply, f.chatErr
}

func newTestDispatcher(f *fakeATS) *Dispatcher {
	return NewDispatcher(Deps{
		Directories:   f.directories(),
		Notifications: f,
		Emails:        f,
		Chat:          f,
		Now:           func() time.Time { return testNow },
	})
}

// mapStore is a HistoryStore over a plain map.
type mapStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	err   error
}

func newMapStore() *mapStore {
	return &mapStore{blobs: make(map[string][]byte)}
}

func (s *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	b, ok := s.blobs[key]
	if !ok {
		return nil, ErrHistoryNotFound
	}
	return b, nil
}

func (s *mapStore) Put(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.blobs[key] = blob
	return nil
}

func (s *mapStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
