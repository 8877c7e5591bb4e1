package assistant

import (
	"regexp"
	"strings"
)

type menuEntry struct {
	path  string
	label string
}

// menuKeywords maps every accepted menu phrase to its page.
var menuKeywords = map[string]menuEntry{
	"dashboard":         {"/dashboard", "Dashboard"},
	"home":              {"/dashboard", "Dashboard"},
	"jobs":              {"/jobs", "Jobs"},
	"job":               {"/jobs", "Jobs"},
	"candidates":        {"/candidates", "Candidates"},
	"candidate":         {"/candidates", "Candidates"},
	"clients":           {"/clients", "Clients"},
	"client":            {"/clients", "Clients"},
	"applications":      {"/applications", "Applications"},
	"application":       {"/applications", "Applications"},
	"interviews":        {"/interviews", "Interviews"},
	"interview":         {"/interviews", "Interviews"},
	"reports":           {"/reports", "Reports"},
	"report":            {"/reports", "Reports"},
	"time tracking":     {"/time-tracking", "Time Tracking"},
	"timesheet":         {"/time-tracking", "Time Tracking"},
	"timesheets":        {"/time-tracking", "Time Tracking"},
	"notifications":     {"/notifications", "Notifications"},
	"profile":           {"/profile", "Profile"},
	"my profile":        {"/profile", "Profile"},
	"settings":          {"/settings", "Settings"},
	"add job":           {"/jobs/add", "Add Job"},
	"create job":        {"/jobs/add", "Add Job"},
	"new job":           {"/jobs/add", "Add Job"},
	"add candidate":     {"/candidates/add", "Add Candidate"},
	"create candidate":  {"/candidates/add", "Add Candidate"},
	"new candidate":     {"/candidates/add", "Add Candidate"},
	"add client":        {"/clients/add", "Add Client"},
	"create client":     {"/clients/add", "Add Client"},
	"new client":        {"/clients/add", "Add Client"},
}

var menuPrefixes = []string{"go to ", "navigate to ", "take me to ", "open ", "show ", "list "}

// menuTarget resolves "jobs", "go to dashboard", "open the settings page".
func menuTarget(msg Normalized) (menuEntry, bool) {
	text := msg.Bare()
	if e, ok := menuKeywords[text]; ok {
		return e, true
	}
	for _, p := range menuPrefixes {
		if strings.HasPrefix(text, p) {
			text = strings.TrimPrefix(text, p)
			break
		}
	}
	text = strings.TrimPrefix(text, "the ")
	text = strings.TrimSuffix(text, " page")
	text = strings.TrimSuffix(text, " screen")
	e, ok := menuKeywords[text]
	return e, ok
}

type insightKind int

const (
	insightNewApplications insightKind = iota
	insightPendingFollowUp
	insightMissingDocuments
	insightTodayInterviews
	insightCandidateSummary
	insightRemindRecruiters
	insightRemindCandidates
)

// quickInsights are whole-message phrases, matched after punctuation trim.
var quickInsights = map[string]insightKind{
	"new applications":         insightNewApplications,
	"new application":          insightNewApplications,
	"pending follow-up":        insightPendingFollowUp,
	"pending follow-ups":       insightPendingFollowUp,
	"pending follow up":        insightPendingFollowUp,
	"pending followup":         insightPendingFollowUp,
	"pending followups":        insightPendingFollowUp,
	"missing document":         insightMissingDocuments,
	"missing documents":        insightMissingDocuments,
	"today interview":          insightTodayInterviews,
	"today interviews":         insightTodayInterviews,
	"today's interview":        insightTodayInterviews,
	"today's interviews":       insightTodayInterviews,
	"candidate summary":        insightCandidateSummary,
	"remind recruiters":        insightRemindRecruiters,
	"send recruiter reminders": insightRemindRecruiters,
	"send reminders":           insightRemindRecruiters,
	"remind candidates":        insightRemindCandidates,
	"send interview reminders": insightRemindCandidates,
	"send candidate reminders": insightRemindCandidates,
}

var (
	missingDocumentPhrases = []string{
		"missing document", "missing resume", "without resume", "no resume",
		"resume missing", "missing cv", "without cv",
	}
	interviewPhrases = []string{
		"today interview", "today's interview", "interviews today", "interview today",
		"upcoming interview", "scheduled interview", "interviews this week",
		"interviews tomorrow", "tomorrow interview", "tomorrow's interview",
	}
	summaryPhrases = []string{
		"candidate summary", "status summary", "pipeline summary", "candidates by status",
		"status breakdown", "status wise", "candidate report",
	}
	jobMatchPhrases = []string{
		"jobs for me", "job for me", "match me", "matching jobs", "suitable jobs",
		"recommend jobs", "suggest jobs", "job match", "looking for a job", "i know", "my skills",
	}
	helpPhrases = []string{"help", "features", "what can you do"}
)

var (
	listVerbs         = []string{"list", "show", "added", "created", "registered", "joined"}
	candidateWords    = []string{"candidate", "candidates"}
	jobWords          = []string{"job", "jobs"}
	otherDomainNouns  = []string{"job", "jobs", "interview", "interviews", "application", "applications", "client", "clients"}
	statusContext     = []string{"candidate", "candidates", "status", "who", "people", "profiles"}
	clientWords       = []string{"client", "clients", "company", "companies", "customer", "customers"}
	corporateSuffixes = map[string]bool{
		"inc": true, "ltd": true, "llc": true, "corp": true, "pvt": true,
		"technologies": true, "solutions": true, "systems": true, "labs": true, "group": true,
	}
	greetings        = []string{"hi", "hello", "hey", "hola", "namaste", "greetings"}
	greetingPrefixes = []string{"good morning", "good afternoon", "good evening"}
)

// commandWords disqualify a short phrase from the name cascade and a
// capitalised phrase from being read as a recruiter name.
var commandWords = toSet(
	"job", "jobs", "candidate", "candidates", "application", "applications",
	"interview", "interviews", "client", "clients", "company", "companies",
	"dashboard", "home", "reports", "report", "settings", "profile", "notifications",
	"timesheet", "timesheets", "tracking", "help", "features",
	"show", "list", "find", "search", "get", "open", "go", "navigate", "take",
	"remind", "send", "add", "create", "update", "delete", "count", "summary",
	"how", "many", "what", "why", "when", "where", "who", "which",
	"is", "are", "the", "me", "my", "for", "with", "i", "you",
	"know", "skills", "skill", "experience", "years", "match", "suggest", "recommend",
	"today", "yesterday", "tomorrow", "week", "month", "upcoming", "activity",
	"hi", "hello", "hey", "hola", "namaste", "greetings", "good", "morning", "afternoon", "evening",
	"thanks", "thank", "ok", "okay", "bye", "yes", "no", "please",
	"missing", "resume", "document", "documents", "reminder", "reminders",
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// searchFiller is stripped when reducing a message to its search term.
var searchFiller = toSet(
	"show", "list", "find", "search", "get", "me", "all", "the", "a", "an", "any",
	"for", "of", "in", "with", "open", "active", "available", "some", "please",
	"named", "called", "details", "info", "about", "position", "positions",
	"opening", "openings", "vacancy", "vacancies",
)

var (
	nameToken        = regexp.MustCompile(`^[A-Z][a-zA-Z'.-]+$`)
	activitySuffixes = []string{"today's activity", "activity today", "activity", "today"}
	attribution      = regexp.MustCompile(`\bcandidates?\s+(?:added|created|uploaded|sourced)\s+by\s+([a-z][a-z'.-]*(?:\s+[a-z][a-z'.-]*){0,2}?)(?:\s+(today|yesterday|last week|last month))?\s*[?.!]?$`)
	entityIDPattern  = regexp.MustCompile(`(?:#|\bid\s*:?\s*)(\d+)\b`)
)

// plausibleName extracts a recruiter name: one to three capitalised tokens,
// optionally followed by "today" or "activity", none of them a known word.
// A capitalised job title typed alone also passes.
func plausibleName(trimmed string) (string, bool) {
	words := strings.Fields(strings.TrimRight(trimmed, "?.!"))
	if len(words) == 0 {
		return "", false
	}

	lower := strings.ToLower(strings.Join(words, " "))
	for _, suffix := range activitySuffixes {
		if strings.HasSuffix(lower, " "+suffix) {
			words = words[:len(words)-len(strings.Fields(suffix))]
			break
		}
	}

	if len(words) < 1 || len(words) > 3 {
		return "", false
	}
	for _, w := range words {
		lw := strings.ToLower(w)
		if !nameToken.MatchString(w) || commandWords[lw] || isStatusWord(lw) {
			return "", false
		}
		if _, menu := menuKeywords[lw]; menu {
			return "", false
		}
	}
	return strings.Join(words, " "), true
}

// recruiterAttribution extracts the recruiter name and optional period from
// "candidates added by <name> [today|yesterday|last week|last month]".
func recruiterAttribution(msg Normalized) (name, period string, ok bool) {
	idx := attribution.FindStringSubmatchIndex(msg.Lower)
	if idx == nil {
		return "", "", false
	}
	src := msg.Lower
	if len(msg.Trimmed) == len(msg.Lower) {
		src = msg.Trimmed
	}
	name = src[idx[2]:idx[3]]
	if idx[4] >= 0 {
		period = msg.Lower[idx[4]:idx[5]]
	}
	return name, period, true
}

// searchTerm drops the given words and the filler from msg.
func searchTerm(msg Normalized, drop ...string) string {
	dropped := toSet(drop...)
	kept := make([]string, 0, len(msg.Words))
	for _, w := range msg.Words {
		w = strings.Trim(w, ".,!?;:'\"()")
		if w == "" || dropped[w] || searchFiller[w] {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
