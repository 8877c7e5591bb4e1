package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"ats-assistant-be/pkg/ats"
)

const timeLayout = "Jan 2, 3:04 PM"

func candidateItem(c ats.Candidate) ResultItem {
	id := strconv.FormatInt(c.ID, 10)
	name := c.FullName()
	if name == "" {
		name = "Candidate #" + id
	}
	display := name + " - " + StatusLabel(c.Status)
	if c.Email != "" {
		display += " (" + c.Email + ")"
	}
	return ResultItem{
		ID:          id,
		Name:        name,
		Type:        ItemCandidate,
		Navigate:    "/candidates/" + id,
		DisplayText: display,
	}
}

func jobItem(j ats.Job) ResultItem {
	id := strconv.FormatInt(j.ID, 10)
	display := j.JobName
	if loc := strings.TrimSpace(j.Location); loc != "" {
		display += " (" + loc + ")"
	}
	if j.ClientName != "" {
		display += " - " + j.ClientName
	}
	return ResultItem{
		ID:          id,
		Name:        j.JobName,
		Type:        ItemJob,
		Navigate:    "/jobs/" + id,
		DisplayText: display,
	}
}

func applicationItem(a ats.Application) ResultItem {
	id := strconv.FormatInt(a.ID, 10)
	name := a.CandidateName
	if name == "" {
		name = "Application #" + id
	}
	display := name
	if a.JobName != "" {
		display += " for " + a.JobName
	}
	display += " - " + StatusLabel(a.Status)
	return ResultItem{
		ID:          id,
		Name:        name,
		Type:        ItemApplication,
		Navigate:    "/applications/" + id,
		DisplayText: display,
	}
}

func interviewItem(iv ats.Interview) ResultItem {
	id := strconv.FormatInt(iv.ID, 10)
	name := iv.CandidateName
	if name == "" {
		name = "Interview #" + id
	}
	display := name
	if iv.JobName != "" {
		display += " - " + iv.JobName
	}
	if !iv.InterviewDate.IsZero() {
		display += " at " + iv.InterviewDate.Format(timeLayout)
	}
	return ResultItem{
		ID:          id,
		Name:        name,
		Type:        ItemInterview,
		Navigate:    "/interviews/" + id,
		DisplayText: display,
	}
}

func mapItems[T any](list []T, fn func(T) ResultItem) []ResultItem {
	items := make([]ResultItem, 0, len(list))
	for _, v := range list {
		items = append(items, fn(v))
	}
	return items
}

func filter[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// plural renders "1 candidate" / "3 candidates".
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
