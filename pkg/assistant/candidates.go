package assistant

import (
	"context"
	"fmt"
	"strings"

	"ats-assistant-be/pkg/ats"

	"go.uber.org/zap"
)

func (d *Dispatcher) listCandidates(ctx context.Context) ([]ats.Candidate, error) {
	list, err := d.dirs.Candidates.ListCandidates(ctx)
	if err != nil {
		d.logger.Warn("list candidates failed", zap.Error(err))
	}
	return list, err
}

func (d *Dispatcher) handleCandidatesByDate(ctx context.Context, msg Normalized) Response {
	rng, ok := ResolveDateRange(msg, d.now())
	if !ok {
		return Text("I couldn't work out which date you meant. Try \"candidates added yesterday\" or \"candidates on 15-01-2025\".")
	}

	candidates, err := d.listCandidates(ctx)
	if err != nil {
		return Text(DescribeError(err, "candidate information"))
	}

	matched := filter(candidates, func(c ats.Candidate) bool { return rng.Contains(c.CreatedAt) })
	if len(matched) == 0 {
		return Text(fmt.Sprintf("No candidates were added %s.", rng.Label))
	}
	return Results(
		fmt.Sprintf("Found %d candidate(s) added %s:", len(matched), rng.Label),
		mapItems(matched, candidateItem),
	)
}

func (d *Dispatcher) handleRecruiterAttribution(ctx context.Context, msg Normalized) Response {
	name, period, _ := recruiterAttribution(msg)

	candidates, err := d.listCandidates(ctx)
	if err != nil {
		return Text(DescribeError(err, "candidate information"))
	}

	needle := strings.ToLower(name)
	matched := filter(candidates, func(c ats.Candidate) bool {
		return strings.Contains(strings.ToLower(c.CreatedBy), needle)
	})

	suffix := ""
	if period != "" {
		if rng, ok := RelativeRange(period, d.now()); ok {
			matched = filter(matched, func(c ats.Candidate) bool { return rng.Contains(c.CreatedAt) })
			suffix = " " + rng.Label
		}
	}

	if len(matched) == 0 {
		return Text(fmt.Sprintf("No candidates found added by %s%s.", name, suffix))
	}
	return Results(
		fmt.Sprintf("Found %d candidate(s) added by %s%s:", len(matched), name, suffix),
		mapItems(matched, candidateItem),
	)
}

func (d *Dispatcher) handleMissingDocuments(ctx context.Context, _ Normalized) Response {
	candidates, err := d.listCandidates(ctx)
	if err != nil {
		return Text(DescribeError(err, "candidate information"))
	}

	missing := filter(candidates, func(c ats.Candidate) bool { return !c.HasResume() })
	if len(missing) == 0 {
		return Text("All candidates have their documents uploaded.")
	}
	return Results(
		fmt.Sprintf("Found %d candidate(s) without a resume:", len(missing)),
		mapItems(missing, candidateItem),
	)
}

func (d *Dispatcher) handlePendingFollowUp(ctx context.Context, _ Normalized) Response {
	candidates, err := d.listCandidates(ctx)
	if err != nil {
		return Text(DescribeError(err, "candidate information"))
	}

	pending := filter(candidates, func(c ats.Candidate) bool { return IsFollowUpStatus(c.Status) })
	if len(pending) == 0 {
		return Text("No candidates are waiting for follow-up.")
	}
	return Results(
		fmt.Sprintf("Found %d candidate(s) pending follow-up:", len(pending)),
		mapItems(pending, candidateItem),
	)
}

func (d *Dispatcher) handleStatusSearch(ctx context.Context, msg Normalized) Response {
	status, ok := DetectStatus(stripLocations(msg.Bare()))
	if !ok {
		return Text("I couldn't recognise that status.")
	}

	candidates, err := d.dirs.Candidates.CandidatesByStatus(ctx, string(status))
	if err != nil {
		d.logger.Warn("candidates by status failed", zap.String("status", string(status)), zap.Error(err))
		return Text(DescribeError(err, "candidate information"))
	}

	if len(candidates) == 0 {
		return Text(fmt.Sprintf("No candidates found with status %s.", status))
	}
	return Results(
		fmt.Sprintf("Found %d candidate(s) with status %s:", len(candidates), status),
		mapItems(candidates, candidateItem),
	)
}

// handleCandidateSummary renders a histogram per status group, then per
// status inside each group. Unknown statuses are listed under "Other".
func (d *Dispatcher) handleCandidateSummary(ctx context.Context, _ Normalized) Response {
	candidates, err := d.listCandidates(ctx)
	if err != nil {
		return Text(DescribeError(err, "candidate information"))
	}
	if len(candidates) == 0 {
		return Text("There are no candidates in the system yet.")
	}

	byStatus := make(map[Status]int)
	other := make(map[string]int)
	var otherOrder []string
	for _, c := range candidates {
		if info, ok := LookupStatus(c.Status); ok {
			byStatus[info.Status]++
			continue
		}
		label := StatusLabel(c.Status)
		if other[label] == 0 {
			otherOrder = append(otherOrder, label)
		}
		other[label]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Candidate summary (%d total):\n", len(candidates))
	for _, group := range StatusGroups() {
		total := 0
		var lines []string
		for _, info := range Statuses() {
			if info.Group != group || byStatus[info.Status] == 0 {
				continue
			}
			total += byStatus[info.Status]
			lines = append(lines, fmt.Sprintf("  - %s: %d", info.Label, byStatus[info.Status]))
		}
		if total == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s: %d\n%s\n", group, total, strings.Join(lines, "\n"))
	}
	if len(otherOrder) > 0 {
		total := 0
		lines := make([]string, 0, len(otherOrder))
		for _, label := range otherOrder {
			total += other[label]
			lines = append(lines, fmt.Sprintf("  - %s: %d", label, other[label]))
		}
		fmt.Fprintf(&b, "\nOther: %d\n%s\n", total, strings.Join(lines, "\n"))
	}
	return Text(strings.TrimRight(b.String(), "\n"))
}
