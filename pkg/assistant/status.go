package assistant

import (
	"regexp"
	"sort"
	"strings"
)

// Status is a canonical candidate status as stored by the ATS backend.
type Status string

// StatusGroup buckets statuses for the pipeline summary.
type StatusGroup string

const (
	GroupActive       StatusGroup = "Active pipeline"
	GroupSubmitted    StatusGroup = "Submitted to client"
	GroupInterviewing StatusGroup = "Interviewing"
	GroupOffer        StatusGroup = "Offer & placement"
	GroupOnHold       StatusGroup = "On hold"
	GroupClosed       StatusGroup = "Closed"
)

// StatusInfo is one row of the status vocabulary.
type StatusInfo struct {
	Status   Status
	Label    string
	Aliases  []string
	Group    StatusGroup
	FollowUp bool
}

// statusTable is the single source for detection, display and grouping.
var statusTable = []StatusInfo{
	{Status: "NEW", Label: "New", Group: GroupActive},
	{Status: "PENDING", Label: "Pending", Group: GroupActive, FollowUp: true},
	{Status: "SCREENING", Label: "Screening", Aliases: []string{"in screening"}, Group: GroupActive},
	{Status: "SHORTLISTED", Label: "Shortlisted", Aliases: []string{"shortlist"}, Group: GroupActive},
	{Status: "CONTACTED", Label: "Contacted", Group: GroupActive, FollowUp: true},
	{Status: "INTERESTED", Label: "Interested", Group: GroupActive, FollowUp: true},
	{Status: "IN_PROGRESS", Label: "In Progress", Group: GroupActive},
	{Status: "DOCUMENTS_PENDING", Label: "Documents Pending", Aliases: []string{"pending documents"}, Group: GroupActive, FollowUp: true},
	{Status: "SUBMITTED_TO_CLIENT", Label: "Submitted to Client", Aliases: []string{"submitted"}, Group: GroupSubmitted, FollowUp: true},
	{Status: "CLIENT_REVIEW", Label: "Client Review", Aliases: []string{"under client review"}, Group: GroupSubmitted, FollowUp: true},
	{Status: "INTERVIEW_SCHEDULED", Label: "Interview Scheduled", Group: GroupInterviewing},
	{Status: "INTERVIEWED", Label: "Interviewed", Group: GroupInterviewing, FollowUp: true},
	{Status: "FIRST_ROUND", Label: "First Round", Aliases: []string{"1st round"}, Group: GroupInterviewing},
	{Status: "SECOND_ROUND", Label: "Second Round", Aliases: []string{"2nd round"}, Group: GroupInterviewing},
	{Status: "FINAL_ROUND", Label: "Final Round", Group: GroupInterviewing},
	{Status: "SELECTED", Label: "Selected", Group: GroupOffer},
	{Status: "OFFERED", Label: "Offered", Aliases: []string{"offer released"}, Group: GroupOffer, FollowUp: true},
	{Status: "OFFER_ACCEPTED", Label: "Offer Accepted", Group: GroupOffer},
	{Status: "JOINED", Label: "Joined", Group: GroupOffer},
	{Status: "PLACED", Label: "Placed", Aliases: []string{"hired"}, Group: GroupOffer},
	{Status: "ON_HOLD", Label: "On Hold", Group: GroupOnHold},
	{Status: "OFFER_DECLINED", Label: "Offer Declined", Group: GroupClosed},
	{Status: "NOT_INTERESTED", Label: "Not Interested", Group: GroupClosed},
	{Status: "REJECTED", Label: "Rejected", Group: GroupClosed},
	{Status: "CLIENT_REJECTED", Label: "Client Rejected", Aliases: []string{"rejected by client"}, Group: GroupClosed},
	{Status: "NO_SHOW", Label: "No Show", Aliases: []string{"no-show"}, Group: GroupClosed},
	{Status: "BACKED_OUT", Label: "Backed Out", Group: GroupClosed},
	{Status: "WITHDRAWN", Label: "Withdrawn", Group: GroupClosed},
	{Status: "DUPLICATE", Label: "Duplicate", Group: GroupClosed},
	{Status: "BLACKLISTED", Label: "Blacklisted", Group: GroupClosed},
}

var statusGroupOrder = []StatusGroup{
	GroupActive, GroupSubmitted, GroupInterviewing, GroupOffer, GroupOnHold, GroupClosed,
}

type statusPhrase struct {
	phrase  string
	status  Status
	pattern *regexp.Regexp
}

var (
	statusByCode    = map[Status]StatusInfo{}
	statusByPhrase  = map[string]Status{}
	statusPhrases   []statusPhrase // longest first
	statusWordIndex = map[string]bool{}
)

func init() {
	for _, info := range statusTable {
		statusByCode[info.Status] = info

		phrases := append([]string{strings.ToLower(info.Label), codePhrase(info.Status)}, info.Aliases...)
		for _, p := range phrases {
			if _, taken := statusByPhrase[p]; taken {
				continue
			}
			statusByPhrase[p] = info.Status
			statusPhrases = append(statusPhrases, statusPhrase{
				phrase:  p,
				status:  info.Status,
				pattern: regexp.MustCompile(`(^|[^a-z0-9])` + regexp.QuoteMeta(p) + `($|[^a-z0-9])`),
			})
			for _, w := range strings.Fields(p) {
				statusWordIndex[w] = true
			}
		}
	}
	sort.SliceStable(statusPhrases, func(i, j int) bool {
		return len(statusPhrases[i].phrase) > len(statusPhrases[j].phrase)
	})
}

func codePhrase(s Status) string {
	return strings.ToLower(strings.ReplaceAll(string(s), "_", " "))
}

func cleanStatusText(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.ReplaceAll(t, "_", " ")
	return strings.Trim(t, " .,!?;:")
}

// MatchStatus finds a status in free text. An exact match means the whole
// text is a status phrase; otherwise the longest phrase found at word
// boundaries wins.
func MatchStatus(text string) (status Status, exact bool, ok bool) {
	t := cleanStatusText(text)
	if t == "" {
		return "", false, false
	}
	if s, found := statusByPhrase[t]; found {
		return s, true, true
	}
	for _, p := range statusPhrases {
		if p.pattern.MatchString(t) {
			return p.status, false, true
		}
	}
	return "", false, false
}

// DetectStatus resolves free text to a canonical status.
func DetectStatus(text string) (Status, bool) {
	s, _, ok := MatchStatus(text)
	return s, ok
}

// LookupStatus returns the vocabulary row for a stored status value.
func LookupStatus(value string) (StatusInfo, bool) {
	code := Status(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), " ", "_")))
	info, ok := statusByCode[code]
	return info, ok
}

// StatusLabel renders a stored status for display. Unknown values are shown
// with underscores replaced.
func StatusLabel(value string) string {
	if info, ok := LookupStatus(value); ok {
		return info.Label
	}
	v := strings.TrimSpace(value)
	if v == "" {
		return "Unknown"
	}
	return strings.ReplaceAll(v, "_", " ")
}

// Statuses returns a copy of the vocabulary in table order.
func Statuses() []StatusInfo {
	out := make([]StatusInfo, len(statusTable))
	copy(out, statusTable)
	return out
}

// StatusGroups returns the groups in display order.
func StatusGroups() []StatusGroup {
	out := make([]StatusGroup, len(statusGroupOrder))
	copy(out, statusGroupOrder)
	return out
}

// IsFollowUpStatus reports whether candidates in this status await a
// recruiter's follow-up.
func IsFollowUpStatus(value string) bool {
	info, ok := LookupStatus(value)
	return ok && info.FollowUp
}

func isStatusWord(w string) bool {
	return statusWordIndex[w]
}
