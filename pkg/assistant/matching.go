package assistant

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"ats-assistant-be/pkg/ats"
)

// Score weights for job matching.
const (
	skillMatchPoints      = 10
	experienceExactPoints = 15
	experienceClosePoints = 8
	locationMatchPoints   = 20
	locationFlexPoints    = 10
	neutralPoints         = 5

	experienceCloseYears = 2
	maxJobMatches        = 10
)

// skillVocabulary is scanned by substring in this order.
var skillVocabulary = []string{
	"java", "python", "javascript", "typescript", "react", "angular", "vue",
	"node", "spring", "django", "flask", ".net", "c#", "c++", "golang",
	"rust", "kotlin", "swift", "android", "ios", "flutter", "php", "ruby",
	"rails", "sql", "mysql", "postgresql", "mongodb", "oracle", "aws",
	"azure", "gcp", "docker", "kubernetes", "devops", "jenkins", "html",
	"css", "selenium", "testing", "machine learning", "data science",
	"salesforce", "sap", "excel", "power bi", "tableau",
}

// skillPatterns capture an explicit skill list after a lead-in phrase.
// ORDER MATTERS: only the first matching pattern is used.
var skillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bknows?\s*:?\s+([a-z0-9+#., /&-]+?)(?:\s+(?:and\s+)?\d+\+?\s*(?:years?|yrs?)|\s+(?:in|at|from|based|located|with)\s|[.!?;]|$)`),
	regexp.MustCompile(`\bexperience with\s*:?\s+([a-z0-9+#., /&-]+?)(?:\s+(?:and\s+)?\d+\+?\s*(?:years?|yrs?)|\s+(?:in|at|from|based|located)\s|[.!?;]|$)`),
	regexp.MustCompile(`\bskilled in\s*:?\s+([a-z0-9+#., /&-]+?)(?:\s+(?:and\s+)?\d+\+?\s*(?:years?|yrs?)|\s+(?:in|at|from|based|located|with)\s|[.!?;]|$)`),
	regexp.MustCompile(`\bexpertise in\s*:?\s+([a-z0-9+#., /&-]+?)(?:\s+(?:and\s+)?\d+\+?\s*(?:years?|yrs?)|\s+(?:in|at|from|based|located|with)\s|[.!?;]|$)`),
	regexp.MustCompile(`\bproficient in\s*:?\s+([a-z0-9+#., /&-]+?)(?:\s+(?:and\s+)?\d+\+?\s*(?:years?|yrs?)|\s+(?:in|at|from|based|located|with)\s|[.!?;]|$)`),
	regexp.MustCompile(`\bskills?\s*:\s*([a-z0-9+#., /&-]+?)(?:\s+(?:and\s+)?\d+\+?\s*(?:years?|yrs?)|\s+(?:in|at|from|based|located|with)\s|[.!?;]|$)`),
}

var skillSeparator = regexp.MustCompile(`\s*(?:,|/|&|\band\b)\s*`)

// experiencePatterns: first match wins.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s+)?(?:experience|exp)\b`),
	regexp.MustCompile(`\b(?:experience|exp)\s*(?:of|:)?\s*(\d+)\+?\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)\b`),
}

var fresherPattern = regexp.MustCompile(`\b(?:fresher|fresh graduate|no experience|entry level)\b`)

// locationVocabulary is scanned in order; the value is the canonical form.
var locationVocabulary = []struct{ term, canonical string }{
	{"bangalore", "bangalore"}, {"bengaluru", "bangalore"}, {"mumbai", "mumbai"},
	{"new delhi", "new delhi"}, {"delhi", "delhi"}, {"hyderabad", "hyderabad"},
	{"chennai", "chennai"}, {"pune", "pune"}, {"kolkata", "kolkata"},
	{"noida", "noida"}, {"gurgaon", "gurgaon"}, {"gurugram", "gurgaon"},
	{"ahmedabad", "ahmedabad"}, {"jaipur", "jaipur"}, {"kochi", "kochi"},
	{"new york", "new york"}, {"london", "london"}, {"san francisco", "san francisco"},
	{"singapore", "singapore"}, {"dubai", "dubai"}, {"toronto", "toronto"},
	{"work from home", "remote"}, {"wfh", "remote"}, {"remote", "remote"},
}

var locationTermPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(locationVocabulary))
	for i, l := range locationVocabulary {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(l.term) + `\b`)
	}
	return out
}()

// stripLocations removes known place names from lower-cased text.
func stripLocations(text string) string {
	for _, re := range locationTermPatterns {
		text = re.ReplaceAllString(text, " ")
	}
	return strings.Join(strings.Fields(text), " ")
}

// locationPatterns capture the place after a preposition, in this order.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bbased in\s+([a-z][a-z ]*?)(?:\s+(?:with|and|for|having|who|as|using)\b|[,.!?;]|$)`),
	regexp.MustCompile(`\blocated in\s+([a-z][a-z ]*?)(?:\s+(?:with|and|for|having|who|as|using)\b|[,.!?;]|$)`),
	regexp.MustCompile(`\bin\s+([a-z][a-z ]*?)(?:\s+(?:with|and|for|having|who|as|using)\b|[,.!?;]|$)`),
	regexp.MustCompile(`\bat\s+([a-z][a-z ]*?)(?:\s+(?:with|and|for|having|who|as|using)\b|[,.!?;]|$)`),
	regexp.MustCompile(`\bfrom\s+([a-z][a-z ]*?)(?:\s+(?:with|and|for|having|who|as|using)\b|[,.!?;]|$)`),
}

var (
	rangePattern    = regexp.MustCompile(`(\d+)\s*(?:-|to|–)\s*(\d+)`)
	openPattern     = regexp.MustCompile(`(\d+)\s*\+`)
	singleNumber    = regexp.MustCompile(`(\d+)`)
	jobFresherMatch = regexp.MustCompile(`\bfresher|\bentry level`)
)

// MatchCriteria is what a job seeker asked for. Nil/empty fields were not
// mentioned.
type MatchCriteria struct {
	Skills     []string
	Experience *int
	Location   string
}

// IsEmpty reports whether nothing could be extracted.
func (c MatchCriteria) IsEmpty() bool {
	return len(c.Skills) == 0 && c.Experience == nil && c.Location == ""
}

// ExtractCriteria runs the three extractors over free text.
func ExtractCriteria(text string) MatchCriteria {
	c := MatchCriteria{Skills: ExtractSkills(text)}
	if years, ok := ExtractExperience(text); ok {
		c.Experience = &years
	}
	if loc, ok := ExtractLocation(text); ok {
		c.Location = loc
	}
	return c
}

// ExtractSkills returns vocabulary hits followed by skills listed after a
// lead-in phrase such as "know:" or "experience with".
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	skills := make([]string, 0)

	add := func(s string) {
		s = strings.TrimSpace(strings.Trim(s, " .,"))
		if s == "" || len(s) > 30 || seen[s] {
			return
		}
		seen[s] = true
		skills = append(skills, s)
	}

	for _, skill := range skillVocabulary {
		if strings.Contains(lower, skill) {
			add(skill)
		}
	}

	for _, p := range skillPatterns {
		m := p.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		for _, part := range skillSeparator.Split(m[1], -1) {
			add(part)
		}
		break
	}

	return skills
}

// ExtractExperience returns the years of experience mentioned in text.
// "fresher" and similar count as zero years.
func ExtractExperience(text string) (int, bool) {
	lower := strings.ToLower(text)
	for _, p := range experiencePatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	if fresherPattern.MatchString(lower) {
		return 0, true
	}
	return 0, false
}

// ExtractLocation returns a known city (or "remote") or the phrase after
// "based in", "located in", "in", "at" or "from".
func ExtractLocation(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, loc := range locationVocabulary {
		if strings.Contains(lower, loc.term) {
			return loc.canonical, true
		}
	}
	for _, p := range locationPatterns {
		m := p.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if loc := strings.TrimSpace(m[1]); loc != "" {
			return loc, true
		}
	}
	return "", false
}

// ExperienceRange is a job's accepted years of experience. Max < 0 means
// no upper bound.
type ExperienceRange struct {
	Min int
	Max int
}

// Contains reports whether years fall inside the range.
func (r ExperienceRange) Contains(years int) bool {
	return years >= r.Min && (r.Max < 0 || years <= r.Max)
}

// ParseExperienceRange reads "4-6 years", "3 to 5 yrs", "5+ years",
// "2 years" or "fresher" from a job's free-text experience field.
func ParseExperienceRange(text string) (ExperienceRange, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return ExperienceRange{}, false
	}
	if m := rangePattern.FindStringSubmatch(lower); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if hi < lo {
			lo, hi = hi, lo
		}
		return ExperienceRange{Min: lo, Max: hi}, true
	}
	if m := openPattern.FindStringSubmatch(lower); m != nil {
		lo, _ := strconv.Atoi(m[1])
		return ExperienceRange{Min: lo, Max: -1}, true
	}
	if m := singleNumber.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return ExperienceRange{Min: n, Max: n}, true
	}
	if jobFresherMatch.MatchString(lower) {
		return ExperienceRange{Min: 0, Max: 0}, true
	}
	return ExperienceRange{}, false
}

// ExperienceMatch grades the experience criterion.
type ExperienceMatch string

const (
	ExperienceNone    ExperienceMatch = ""
	ExperienceExact   ExperienceMatch = "exact"
	ExperienceClose   ExperienceMatch = "close"
	ExperienceNeutral ExperienceMatch = "neutral"
)

// JobMatch is a scored job with the per-criterion flags shown to the user.
type JobMatch struct {
	Job             ats.Job
	Score           int
	MatchedSkills   []string
	Experience      ExperienceMatch
	LocationMatched bool
	LocationFlex    bool
}

// ScoreJob applies the matching weights to a single job.
func ScoreJob(c MatchCriteria, job ats.Job) JobMatch {
	m := JobMatch{Job: job}

	jobSkills := strings.ToLower(job.SkillsName)
	if len(c.Skills) > 0 {
		for _, s := range c.Skills {
			if jobSkills != "" && strings.Contains(jobSkills, strings.ToLower(s)) {
				m.Score += skillMatchPoints
				m.MatchedSkills = append(m.MatchedSkills, s)
			}
		}
	} else if strings.TrimSpace(jobSkills) != "" {
		m.Score += neutralPoints
	}

	rng, hasRange := ParseExperienceRange(job.Experience)
	if c.Experience != nil {
		if hasRange {
			years := *c.Experience
			switch {
			case rng.Contains(years):
				m.Score += experienceExactPoints
				m.Experience = ExperienceExact
			case abs(years-rng.Min) <= experienceCloseYears:
				m.Score += experienceClosePoints
				m.Experience = ExperienceClose
			}
		}
	} else if hasRange {
		m.Score += neutralPoints
		m.Experience = ExperienceNeutral
	}

	jobLoc := strings.ToLower(strings.TrimSpace(job.Location))
	if c.Location != "" {
		loc := strings.ToLower(c.Location)
		switch {
		case jobLoc != "" && (strings.Contains(jobLoc, loc) || strings.Contains(loc, jobLoc)):
			m.Score += locationMatchPoints
			m.LocationMatched = true
		case strings.Contains(jobLoc, "remote") && strings.Contains(loc, "remote"):
			m.Score += locationMatchPoints
			m.LocationMatched = true
		case strings.Contains(jobLoc, "hybrid") || strings.Contains(jobLoc, "flexible"):
			m.Score += locationFlexPoints
			m.LocationFlex = true
		}
	} else if jobLoc != "" {
		m.Score += neutralPoints
	}

	return m
}

// RankJobs scores active jobs, drops zero scores and returns the best
// limit matches. Ties keep the input order.
func RankJobs(c MatchCriteria, jobs []ats.Job, limit int) []JobMatch {
	if limit <= 0 {
		limit = maxJobMatches
	}
	matches := make([]JobMatch, 0, len(jobs))
	for _, job := range jobs {
		if !job.IsActive() {
			continue
		}
		m := ScoreJob(c, job)
		if m.Score > 0 {
			matches = append(matches, m)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
