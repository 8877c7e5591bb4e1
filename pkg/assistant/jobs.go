package assistant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ats-assistant-be/pkg/ats"

	"go.uber.org/zap"
)

func (d *Dispatcher) listJobs(ctx context.Context) ([]ats.Job, error) {
	jobs, err := d.dirs.Jobs.ListJobs(ctx)
	if err != nil {
		d.logger.Warn("list jobs failed", zap.Error(err))
	}
	return jobs, err
}

func (d *Dispatcher) handleJobMatching(ctx context.Context, msg Normalized) Response {
	criteria := ExtractCriteria(msg.Lower)

	jobs, err := d.listJobs(ctx)
	if err != nil {
		return Text(DescribeError(err, "job data"))
	}

	matches := RankJobs(criteria, jobs, maxJobMatches)
	if len(matches) == 0 {
		return Text("I couldn't find any active jobs matching your profile. Try different skills or a broader location.")
	}

	header := fmt.Sprintf("Found %d matching job(s)", len(matches))
	if desc := describeCriteria(criteria); desc != "" {
		header += " for " + desc
	}

	items := make([]ResultItem, 0, len(matches))
	for _, m := range matches {
		item := jobItem(m.Job)
		item.DisplayText = fmt.Sprintf("%s - score %d%s", item.DisplayText, m.Score, matchFlags(criteria, m))
		items = append(items, item)
	}
	return Results(header+":", items)
}

func describeCriteria(c MatchCriteria) string {
	var parts []string
	if len(c.Skills) > 0 {
		parts = append(parts, "skills: "+strings.Join(c.Skills, ", "))
	}
	if c.Experience != nil {
		parts = append(parts, "experience: "+plural(*c.Experience, "year"))
	}
	if c.Location != "" {
		parts = append(parts, "location: "+c.Location)
	}
	return strings.Join(parts, "; ")
}

// matchFlags renders which criteria a job satisfied, e.g.
// " [skills: java | experience: exact | location]".
func matchFlags(c MatchCriteria, m JobMatch) string {
	var flags []string
	if len(m.MatchedSkills) > 0 {
		flags = append(flags, "skills: "+strings.Join(m.MatchedSkills, ", "))
	}
	if c.Experience != nil && m.Experience != ExperienceNone {
		flags = append(flags, "experience: "+string(m.Experience))
	}
	switch {
	case m.LocationMatched:
		flags = append(flags, "location")
	case m.LocationFlex:
		flags = append(flags, "location: flexible")
	}
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, " | ") + "]"
}

func (d *Dispatcher) handleJobKeywordSearch(ctx context.Context, msg Normalized) Response {
	term := searchTerm(msg, jobWords...)

	jobs, err := d.listJobs(ctx)
	if err != nil {
		return Text(DescribeError(err, "job data"))
	}

	matched := filter(jobs, func(j ats.Job) bool {
		if !j.IsActive() {
			return false
		}
		for _, field := range []string{j.JobName, j.SkillsName, j.Location, j.Description} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})

	if len(matched) == 0 {
		return Text(fmt.Sprintf("No active jobs found matching \"%s\".", term))
	}
	return Results(
		fmt.Sprintf("Found %d active job(s) matching \"%s\":", len(matched), term),
		mapItems(matched, jobItem),
	)
}

func (d *Dispatcher) jobDetail(ctx context.Context, id int64) Response {
	job, err := d.dirs.Jobs.GetJob(ctx, id)
	if err != nil {
		d.logger.Warn("get job failed", zap.Int64("id", id), zap.Error(err))
		if ClassifyError(err) == ErrorGeneric {
			return Text(fmt.Sprintf("I couldn't find job #%d.", id))
		}
		return Text(DescribeError(err, "job data"))
	}
	return Navigate(fmt.Sprintf("Opening job %s...", job.JobName), "/jobs/"+strconv.FormatInt(job.ID, 10), job.JobName)
}

type jobStatusCommand struct {
	pattern *regexp.Regexp
	status  string
	label   string
}

// jobStatusCommands are imperative only: "closed job #4" reads as a lookup,
// "close job #4" as a write.
var jobStatusCommands = []jobStatusCommand{
	{regexp.MustCompile(`^(?:please\s+)?close\b`), ats.JobStatusClosed, "closed"},
	{regexp.MustCompile(`^(?:please\s+)?(?:reopen|re-open|activate)\b`), ats.JobStatusActive, "active"},
	{regexp.MustCompile(`^(?:please\s+)?deactivate\b`), ats.JobStatusInactive, "inactive"},
	{regexp.MustCompile(`^(?:please\s+)?(?:pause\b|put\b.*\bon hold\b)`), ats.JobStatusOnHold, "on hold"},
}

func jobStatusChange(msg Normalized) (jobStatusCommand, bool) {
	for _, c := range jobStatusCommands {
		if c.pattern.MatchString(msg.Bare()) {
			return c, true
		}
	}
	return jobStatusCommand{}, false
}

func (d *Dispatcher) setJobStatus(ctx context.Context, id int64, cmd jobStatusCommand) Response {
	sid := strconv.FormatInt(id, 10)
	if err := d.dirs.Jobs.UpdateJobStatus(ctx, id, cmd.status); err != nil {
		d.logger.Warn("update job status failed", zap.Int64("id", id), zap.String("status", cmd.status), zap.Error(err))
		if errors.Is(err, ats.ErrNotFound) {
			return Text(fmt.Sprintf("I couldn't find job #%d.", id))
		}
		if ClassifyError(err) == ErrorGeneric {
			return Text(fmt.Sprintf("I couldn't update job #%d.", id))
		}
		return Text(DescribeError(err, "job data"))
	}
	d.logger.Info("job status updated", zap.Int64("id", id), zap.String("status", cmd.status))
	return Navigate(fmt.Sprintf("Job #%d is now %s.", id, cmd.label), "/jobs/"+sid, "Job #"+sid)
}
