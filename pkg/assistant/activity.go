package assistant

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"ats-assistant-be/pkg/ats"

	"go.uber.org/zap"
)

func (d *Dispatcher) handleQuickInsight(ctx context.Context, msg Normalized) Response {
	switch quickInsights[msg.Bare()] {
	case insightNewApplications:
		return d.handleNewApplications(ctx, msg)
	case insightPendingFollowUp:
		return d.handlePendingFollowUp(ctx, msg)
	case insightMissingDocuments:
		return d.handleMissingDocuments(ctx, msg)
	case insightTodayInterviews:
		return d.interviewsIn(ctx, DayRange(d.today(), "today ("+d.today().Format(dayLayout)+")"))
	case insightCandidateSummary:
		return d.handleCandidateSummary(ctx, msg)
	case insightRemindRecruiters:
		return d.handleRecruiterReminders(ctx, msg)
	case insightRemindCandidates:
		return d.handleCandidateReminders(ctx, msg)
	default:
		return handleHelp(ctx, msg)
	}
}

func (d *Dispatcher) handleNewApplications(ctx context.Context, _ Normalized) Response {
	applications, err := d.dirs.Applications.ListApplications(ctx)
	if err != nil {
		d.logger.Warn("list applications failed", zap.Error(err))
		return Text(DescribeError(err, "application data"))
	}

	today := DayRange(d.today(), "today")
	fresh := filter(applications, func(a ats.Application) bool { return today.Contains(a.CreatedAt) })
	if len(fresh) == 0 {
		return Text("No new applications today.")
	}
	return Results(
		fmt.Sprintf("Found %d new application(s) today:", len(fresh)),
		mapItems(fresh, applicationItem),
	)
}

func (d *Dispatcher) handleInterviewsInRange(ctx context.Context, msg Normalized) Response {
	today := d.today()
	switch {
	case msg.Contains("tomorrow"):
		tomorrow := today.AddDate(0, 0, 1)
		return d.interviewsIn(ctx, DayRange(tomorrow, "tomorrow ("+tomorrow.Format(dayLayout)+")"))
	case msg.Contains("upcoming", "this week", "scheduled"):
		end := today.AddDate(0, 0, 7)
		return d.interviewsIn(ctx, DateRange{
			From:  today,
			To:    end,
			Label: spanLabel("in the next 7 days", today, end.AddDate(0, 0, -1)),
		})
	default:
		return d.interviewsIn(ctx, DayRange(today, "today ("+today.Format(dayLayout)+")"))
	}
}

func (d *Dispatcher) interviewsIn(ctx context.Context, rng DateRange) Response {
	interviews, err := d.dirs.Interviews.ListInterviews(ctx)
	if err != nil {
		d.logger.Warn("list interviews failed", zap.Error(err))
		return Text(DescribeError(err, "interview data"))
	}

	matched := filter(interviews, func(iv ats.Interview) bool { return rng.Contains(iv.InterviewDate) })
	slices.SortStableFunc(matched, func(a, b ats.Interview) int {
		return a.InterviewDate.Compare(b.InterviewDate)
	})

	if len(matched) == 0 {
		return Text(fmt.Sprintf("No interviews scheduled %s.", rng.Label))
	}
	return Results(
		fmt.Sprintf("Found %d interview(s) scheduled %s:", len(matched), rng.Label),
		mapItems(matched, interviewItem),
	)
}

// handleRecruiterActivity summarises what one recruiter created today. The
// three lists are fetched in parallel; a failed list counts as empty.
func (d *Dispatcher) handleRecruiterActivity(ctx context.Context, msg Normalized) Response {
	name, _ := plausibleName(msg.Trimmed)

	var (
		candidates   []ats.Candidate
		applications []ats.Application
		interviews   []ats.Interview
	)
	outcome := fetchAll(ctx, d.logger,
		fetchInto("candidates", &candidates, d.dirs.Candidates.ListCandidates),
		fetchInto("applications", &applications, d.dirs.Applications.ListApplications),
		fetchInto("interviews", &interviews, d.dirs.Interviews.ListInterviews),
	)
	if outcome.allFailed() {
		return Text(DescribeError(outcome.firstErr, "recruiter activity"))
	}

	today := DayRange(d.today(), "today")
	needle := strings.ToLower(name)
	byRecruiter := func(createdBy string) bool {
		return strings.Contains(strings.ToLower(createdBy), needle)
	}

	candidates = filter(candidates, func(c ats.Candidate) bool {
		return byRecruiter(c.CreatedBy) && today.Contains(c.CreatedAt)
	})
	applications = filter(applications, func(a ats.Application) bool {
		return byRecruiter(a.CreatedBy) && today.Contains(a.CreatedAt)
	})
	interviews = filter(interviews, func(iv ats.Interview) bool {
		return byRecruiter(iv.CreatedBy) && today.Contains(iv.CreatedAt)
	})

	if len(candidates)+len(applications)+len(interviews) == 0 {
		return Text(fmt.Sprintf("No activity found for %s today.", name))
	}

	summary := fmt.Sprintf("Activity for %s today (%s):\n- %s added\n- %s created\n- %s scheduled",
		name, d.today().Format(dayLayout),
		plural(len(candidates), "candidate"),
		plural(len(applications), "application"),
		plural(len(interviews), "interview"),
	)

	items := append(mapItems(candidates, candidateItem), mapItems(applications, applicationItem)...)
	if len(items) == 0 {
		return Text(summary)
	}
	return Results(summary, items)
}
