package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ats-assistant-be/pkg/ats"

	"go.uber.org/zap"
)

const (
	reminderNotificationType = "REMINDER"
	interviewReminderSubject = "Interview reminder"
	interviewReminderBody    = "This is a reminder that you have an interview scheduled for today. Please be available on time and reply to this e-mail if you need to reschedule."
)

// handleRecruiterReminders sends one notification per recruiter who owns
// candidates awaiting follow-up. A failed notification does not stop the
// others; the reply reports how many went out.
func (d *Dispatcher) handleRecruiterReminders(ctx context.Context, _ Normalized) Response {
	if d.notifications == nil {
		return Text("Recruiter reminders are not available right now.")
	}

	candidates, err := d.listCandidates(ctx)
	if err != nil {
		return Text(DescribeError(err, "candidate information"))
	}

	pending := make(map[string][]string)
	for _, c := range candidates {
		recruiter := strings.TrimSpace(c.CreatedBy)
		if recruiter == "" || !IsFollowUpStatus(c.Status) {
			continue
		}
		pending[recruiter] = append(pending[recruiter], c.FullName())
	}
	if len(pending) == 0 {
		return Text("No candidates are waiting for follow-up, so no reminders were sent.")
	}

	recruiters := make([]string, 0, len(pending))
	for r := range pending {
		recruiters = append(recruiters, r)
	}
	sort.Strings(recruiters)

	var failed []string
	for _, recruiter := range recruiters {
		names := pending[recruiter]
		n := ats.Notification{
			Recipient: recruiter,
			Title:     "Pending follow-up reminder",
			Message:   fmt.Sprintf("You have %s awaiting follow-up: %s", plural(len(names), "candidate"), strings.Join(names, ", ")),
			Type:      reminderNotificationType,
		}
		if err := d.notifications.CreateNotification(ctx, n); err != nil {
			d.logger.Warn("recruiter reminder failed", zap.String("recruiter", recruiter), zap.Error(err))
			failed = append(failed, recruiter)
		}
	}

	return Text(partialReport("Reminders sent to %d of %d recruiters.", len(recruiters)-len(failed), len(recruiters), failed))
}

// handleCandidateReminders e-mails every candidate interviewing today. The
// interview and candidate lists are fetched in parallel to join e-mails.
func (d *Dispatcher) handleCandidateReminders(ctx context.Context, _ Normalized) Response {
	if d.emails == nil {
		return Text("Candidate reminders are not available right now.")
	}

	var (
		interviews []ats.Interview
		candidates []ats.Candidate
	)
	var interviewErr error
	fetchAll(ctx, d.logger,
		fetchCall{name: "interviews", run: func(ctx context.Context) error {
			list, err := d.dirs.Interviews.ListInterviews(ctx)
			interviews, interviewErr = list, err
			return err
		}},
		fetchInto("candidates", &candidates, d.dirs.Candidates.ListCandidates),
	)
	if interviewErr != nil {
		return Text(DescribeError(interviewErr, "interview data"))
	}

	today := DayRange(d.today(), "today")
	emails := make(map[int64]string, len(candidates))
	for _, c := range candidates {
		emails[c.ID] = strings.TrimSpace(c.Email)
	}

	var (
		recipients []string
		failed     []string
		seen       = make(map[int64]bool)
		byEmail    = make(map[string]string)
	)
	for _, iv := range interviews {
		if !today.Contains(iv.InterviewDate) || seen[iv.CandidateID] {
			continue
		}
		seen[iv.CandidateID] = true

		name := iv.CandidateName
		if name == "" {
			name = fmt.Sprintf("Candidate #%d", iv.CandidateID)
		}
		email := emails[iv.CandidateID]
		if email == "" {
			failed = append(failed, name)
			continue
		}
		recipients = append(recipients, email)
		byEmail[strings.ToLower(email)] = name
	}

	total := len(seen)
	if total == 0 {
		return Text("No interviews are scheduled for today, so no reminders were sent.")
	}
	if len(recipients) == 0 {
		return Text(partialReport("Interview reminders sent to %d of %d candidates.", 0, total, failed))
	}

	result, err := d.emails.SendBulkEmail(ctx, ats.BulkEmail{
		Recipients: recipients,
		Subject:    interviewReminderSubject,
		Body:       interviewReminderBody,
	})
	if err != nil {
		d.logger.Warn("candidate reminders failed", zap.Int("recipients", len(recipients)), zap.Error(err))
		for _, email := range recipients {
			failed = append(failed, byEmail[strings.ToLower(email)])
		}
		return Text(partialReport("Interview reminders sent to %d of %d candidates.", 0, total, failed))
	}

	if result == nil {
		result = &ats.BulkEmailResult{Sent: recipients}
	}
	for _, email := range result.Failed {
		name, ok := byEmail[strings.ToLower(email)]
		if !ok {
			name = email
		}
		failed = append(failed, name)
	}
	return Text(partialReport("Interview reminders sent to %d of %d candidates.", total-len(failed), total, failed))
}

func partialReport(format string, sent, total int, failed []string) string {
	msg := fmt.Sprintf(format, sent, total)
	if len(failed) > 0 {
		msg += "\nFailed: " + strings.Join(failed, ", ")
	}
	return msg
}
