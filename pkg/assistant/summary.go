package assistant

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"ats-assistant-be/pkg/ats"

	"go.uber.org/zap"
)

const recentLimit = 10

type domainNoun int

const (
	nounJob domainNoun = iota
	nounCandidate
	nounApplication
	nounInterview
)

var countPattern = regexp.MustCompile(`\b(?:how many|count|number of|total)\b`)

// asksForCount reports whether msg asks for a total ("how many jobs",
// "count candidates"). Whole words only, so "accountant" is not a count.
func asksForCount(msg Normalized) bool {
	return countPattern.MatchString(msg.Lower)
}

// nounOf picks the most specific domain noun in msg.
func nounOf(msg Normalized) domainNoun {
	switch {
	case msg.Contains("interview"):
		return nounInterview
	case msg.Contains("application"):
		return nounApplication
	case msg.Contains("candidate"):
		return nounCandidate
	default:
		return nounJob
	}
}

// handleDomainSummary answers a message naming a domain noun. Sub-intents
// are tried in order: job status change or detail by id, count, date range,
// candidate search, then a plain list.
func (d *Dispatcher) handleDomainSummary(ctx context.Context, msg Normalized) Response {
	noun := nounOf(msg)

	if m := entityIDPattern.FindStringSubmatch(msg.Lower); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			if cmd, ok := jobStatusChange(msg); ok && noun == nounJob {
				return d.setJobStatus(ctx, id, cmd)
			}
			return d.detail(ctx, noun, id)
		}
	}

	if asksForCount(msg) {
		return d.count(ctx, noun)
	}

	if hasDateExpression(msg, d.now().Location()) {
		if rng, ok := ResolveDateRange(msg, d.now()); ok {
			return d.inRange(ctx, noun, rng)
		}
	}

	if noun == nounCandidate {
		if term := searchTerm(msg, "candidate", "candidates", "recent", "latest", "new"); term != "" {
			return d.searchCandidates(ctx, term)
		}
	}

	return d.list(ctx, noun)
}

func (d *Dispatcher) detail(ctx context.Context, noun domainNoun, id int64) Response {
	sid := strconv.FormatInt(id, 10)
	switch noun {
	case nounJob:
		return d.jobDetail(ctx, id)
	case nounCandidate:
		c, err := d.dirs.Candidates.GetCandidate(ctx, id)
		if err != nil {
			d.logger.Warn("get candidate failed", zap.Int64("id", id), zap.Error(err))
			if ClassifyError(err) == ErrorGeneric {
				return Text(fmt.Sprintf("I couldn't find candidate #%d.", id))
			}
			return Text(DescribeError(err, "candidate information"))
		}
		return Navigate(fmt.Sprintf("Opening candidate %s...", c.FullName()), "/candidates/"+sid, c.FullName())
	case nounApplication:
		return Navigate("Opening application #"+sid+"...", "/applications/"+sid, "Application #"+sid)
	default:
		return Navigate("Opening interview #"+sid+"...", "/interviews/"+sid, "Interview #"+sid)
	}
}

func (d *Dispatcher) count(ctx context.Context, noun domainNoun) Response {
	switch noun {
	case nounJob:
		jobs, err := d.listJobs(ctx)
		if err != nil {
			return Text(DescribeError(err, "job data"))
		}
		active := len(filter(jobs, ats.Job.IsActive))
		return Text(fmt.Sprintf("There are %d job(s) in total, %d of them active.", len(jobs), active))
	case nounCandidate:
		n, err := d.dirs.Candidates.CountCandidates(ctx)
		if err != nil {
			d.logger.Warn("count candidates failed", zap.Error(err))
			return Text(DescribeError(err, "candidate information"))
		}
		return Text(fmt.Sprintf("There are %d candidate(s) in total.", n))
	case nounApplication:
		n, err := d.dirs.Applications.CountApplications(ctx)
		if err != nil {
			d.logger.Warn("count applications failed", zap.Error(err))
			return Text(DescribeError(err, "application data"))
		}
		return Text(fmt.Sprintf("There are %d application(s) in total.", n))
	default:
		n, err := d.dirs.Interviews.CountInterviews(ctx)
		if err != nil {
			d.logger.Warn("count interviews failed", zap.Error(err))
			return Text(DescribeError(err, "interview data"))
		}
		return Text(fmt.Sprintf("There are %d interview(s) in total.", n))
	}
}

func (d *Dispatcher) inRange(ctx context.Context, noun domainNoun, rng DateRange) Response {
	switch noun {
	case nounJob:
		jobs, err := d.listJobs(ctx)
		if err != nil {
			return Text(DescribeError(err, "job data"))
		}
		matched := filter(jobs, func(j ats.Job) bool { return rng.Contains(j.CreatedAt) })
		return resultsOrText(matched, jobItem, "job(s) posted", rng.Label)
	case nounCandidate:
		candidates, err := d.listCandidates(ctx)
		if err != nil {
			return Text(DescribeError(err, "candidate information"))
		}
		matched := filter(candidates, func(c ats.Candidate) bool { return rng.Contains(c.CreatedAt) })
		return resultsOrText(matched, candidateItem, "candidate(s) added", rng.Label)
	case nounApplication:
		applications, err := d.dirs.Applications.ListApplications(ctx)
		if err != nil {
			d.logger.Warn("list applications failed", zap.Error(err))
			return Text(DescribeError(err, "application data"))
		}
		matched := filter(applications, func(a ats.Application) bool { return rng.Contains(a.CreatedAt) })
		return resultsOrText(matched, applicationItem, "application(s) received", rng.Label)
	default:
		return d.interviewsIn(ctx, rng)
	}
}

func resultsOrText[T any](list []T, item func(T) ResultItem, what, label string) Response {
	if len(list) == 0 {
		return Text(fmt.Sprintf("No %s %s.", strings.Replace(what, "(s)", "s", 1), label))
	}
	return Results(fmt.Sprintf("Found %d %s %s:", len(list), what, label), mapItems(list, item))
}

func (d *Dispatcher) searchCandidates(ctx context.Context, term string) Response {
	candidates, err := d.dirs.Candidates.SearchCandidates(ctx, term)
	if err != nil {
		d.logger.Warn("candidate search failed", zap.String("term", term), zap.Error(err))
		return Text(DescribeError(err, "candidate information"))
	}
	if len(candidates) == 0 {
		return Text(fmt.Sprintf("No candidates found matching \"%s\".", term))
	}
	return Results(
		fmt.Sprintf("Found %d candidate(s) matching \"%s\":", len(candidates), term),
		mapItems(candidates, candidateItem),
	)
}

func (d *Dispatcher) list(ctx context.Context, noun domainNoun) Response {
	switch noun {
	case nounJob:
		jobs, err := d.listJobs(ctx)
		if err != nil {
			return Text(DescribeError(err, "job data"))
		}
		active := filter(jobs, ats.Job.IsActive)
		if len(active) == 0 {
			return Text("There are no active jobs right now.")
		}
		return Results(fmt.Sprintf("Found %d active job(s):", len(active)), mapItems(active, jobItem))
	case nounCandidate:
		candidates, err := d.listCandidates(ctx)
		if err != nil {
			return Text(DescribeError(err, "candidate information"))
		}
		recent := mostRecent(candidates, func(c ats.Candidate) int64 { return c.CreatedAt.UnixNano() })
		if len(recent) == 0 {
			return Text("There are no candidates in the system yet.")
		}
		return Results(fmt.Sprintf("Here are the %d most recent candidate(s):", len(recent)), mapItems(recent, candidateItem))
	case nounApplication:
		applications, err := d.dirs.Applications.ListApplications(ctx)
		if err != nil {
			d.logger.Warn("list applications failed", zap.Error(err))
			return Text(DescribeError(err, "application data"))
		}
		recent := mostRecent(applications, func(a ats.Application) int64 { return a.CreatedAt.UnixNano() })
		if len(recent) == 0 {
			return Text("There are no applications yet.")
		}
		return Results(fmt.Sprintf("Here are the %d most recent application(s):", len(recent)), mapItems(recent, applicationItem))
	default:
		today := d.today()
		return d.interviewsIn(ctx, DateRange{
			From:  today,
			To:    today.AddDate(1, 0, 0),
			Label: "from today onwards",
		})
	}
}

// mostRecent returns up to recentLimit entries, newest first. The input is
// not reordered since directory lists may be shared.
func mostRecent[T any](list []T, key func(T) int64) []T {
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b T) int {
		ka, kb := key(a), key(b)
		switch {
		case ka > kb:
			return -1
		case ka < kb:
			return 1
		default:
			return 0
		}
	})
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	return sorted
}
