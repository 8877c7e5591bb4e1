package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ats-assistant-be/pkg/ats"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Rule names, in table order.
const (
	RuleMenuNavigation       = "menu_navigation"
	RuleCandidatesByDate     = "candidates_by_date"
	RuleQuickInsight         = "quick_insight"
	RuleRecruiterActivity    = "recruiter_activity"
	RuleRecruiterAttribution = "recruiter_attribution"
	RuleMissingDocuments     = "missing_documents"
	RuleInterviewsInRange    = "interviews_in_range"
	RuleCandidateSummary     = "candidate_summary"
	RuleStatusSearch         = "status_search"
	RuleClientSearch         = "client_search"
	RuleNameCascade          = "name_cascade"
	RuleJobMatching          = "job_matching"
	RuleJobKeywordSearch     = "job_keyword_search"
	RuleDomainSummary        = "domain_summary"
	RuleHelp                 = "help"
	RuleGreeting             = "greeting"
	RuleFallback             = "fallback"
)

// Deps are the collaborators a Dispatcher consults. Only Directories is
// required; a nil write service makes its reminder command report that it
// is unavailable, and a nil Chat makes the fallback answer from canned text.
type Deps struct {
	Directories   ats.Directories
	Notifications ats.NotificationService
	Emails        ats.CandidateEmailService
	Chat          ats.ChatBackend

	// Now defaults to time.Now. Relative dates resolve in its location.
	Now    func() time.Time
	Logger *zap.Logger
}

// Dispatcher classifies messages through the ordered rule table and runs the
// winning handler.
type Dispatcher struct {
	dirs          ats.Directories
	notifications ats.NotificationService
	emails        ats.CandidateEmailService
	chat          ats.ChatBackend

	now    func() time.Time
	logger *zap.Logger
	tracer trace.Tracer
	rules  []Rule
}

func NewDispatcher(deps Deps) *Dispatcher {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	d := &Dispatcher{
		dirs:          deps.Directories,
		notifications: deps.Notifications,
		emails:        deps.Emails,
		chat:          deps.Chat,
		now:           deps.Now,
		logger:        deps.Logger.Named("dispatcher"),
		tracer:        otel.Tracer("ats-assistant/dispatcher"),
	}
	d.rules = d.buildRules()
	return d
}

// buildRules declares the rule table. ORDER MATTERS: narrower rules come
// before the broad ones they overlap with.
func (d *Dispatcher) buildRules() []Rule {
	isAttribution := func(msg Normalized) bool {
		_, _, ok := recruiterAttribution(msg)
		return ok
	}
	isName := func(msg Normalized) bool {
		_, ok := plausibleName(msg.Trimmed)
		return ok
	}

	return []Rule{
		{Name: RuleMenuNavigation, Match: d.matchMenu, Handle: d.handleMenu},
		{Name: RuleCandidatesByDate, Match: All(d.matchCandidateDate, Not(isAttribution)), Handle: d.handleCandidatesByDate},
		{Name: RuleQuickInsight, Match: matchQuickInsight, Handle: d.handleQuickInsight},
		{Name: RuleRecruiterActivity, Match: All(isName, Not(isAttribution)), Handle: d.handleRecruiterActivity},
		{Name: RuleRecruiterAttribution, Match: isAttribution, Handle: d.handleRecruiterAttribution},
		{Name: RuleMissingDocuments, Match: containsPhrase(missingDocumentPhrases), Handle: d.handleMissingDocuments},
		{Name: RuleInterviewsInRange, Match: containsPhrase(interviewPhrases), Handle: d.handleInterviewsInRange},
		{Name: RuleCandidateSummary, Match: containsPhrase(summaryPhrases), Handle: d.handleCandidateSummary},
		{Name: RuleStatusSearch, Match: matchStatusSearch, Handle: d.handleStatusSearch},
		{Name: RuleClientSearch, Match: matchClientSearch, Handle: d.handleClientSearch},
		{Name: RuleNameCascade, Match: matchNameCascade, Handle: d.handleNameCascade},
		{Name: RuleJobMatching, Match: matchJobMatching, Handle: d.handleJobMatching},
		{Name: RuleJobKeywordSearch, Match: matchJobKeyword, Handle: d.handleJobKeywordSearch},
		{Name: RuleDomainSummary, Match: matchDomainNoun, Handle: d.handleDomainSummary},
		{Name: RuleHelp, Match: containsPhrase(helpPhrases), Handle: handleHelp},
		{Name: RuleGreeting, Match: matchGreeting, Handle: handleGreeting},
		{Name: RuleFallback, Match: func(Normalized) bool { return true }, Handle: d.handleFallback},
	}
}

// Rules returns a copy of the rule table in evaluation order.
func (d *Dispatcher) Rules() []Rule {
	out := make([]Rule, len(d.rules))
	copy(out, d.rules)
	return out
}

// Classify returns the name of the rule that would handle raw.
func (d *Dispatcher) Classify(raw string) string {
	rule, _ := Select(d.rules, Normalize(raw))
	return rule.Name
}

// Dispatch answers one message. It never fails: collaborator errors and
// panics in a handler both end up as a bot message.
func (d *Dispatcher) Dispatch(ctx context.Context, raw string) Response {
	_, resp := d.Answer(ctx, raw)
	return resp
}

// Answer is Dispatch that also reports the name of the rule that answered.
func (d *Dispatcher) Answer(ctx context.Context, raw string) (ruleName string, resp Response) {
	ctx, span := d.tracer.Start(ctx, "assistant.Dispatch")
	defer span.End()

	start := time.Now()
	rule := Rule{Name: RuleFallback}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("handler %s panicked: %v", rule.Name, r)
			d.logger.Error("dispatch recovered from panic", zap.String("rule", rule.Name), zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
			ruleName = rule.Name
			resp = Text(DescribeError(err, "your request"))
		}
	}()

	msg := Normalize(raw)
	rule, _ = Select(d.rules, msg)
	span.SetAttributes(attribute.String("assistant.rule", rule.Name))

	resp = rule.Handle(ctx, msg)

	span.SetAttributes(attribute.String("assistant.response_kind", string(resp.Kind)))
	d.logger.Debug("message dispatched",
		zap.String("rule", rule.Name),
		zap.String("kind", string(resp.Kind)),
		zap.Int("items", len(resp.Items)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return rule.Name, resp
}

func (d *Dispatcher) today() time.Time {
	return StartOfDay(d.now())
}

// --- predicates ---

func containsPhrase(phrases []string) Predicate {
	return func(msg Normalized) bool { return msg.Contains(phrases...) }
}

func (d *Dispatcher) matchMenu(msg Normalized) bool {
	_, ok := menuTarget(msg)
	return ok
}

func (d *Dispatcher) matchCandidateDate(msg Normalized) bool {
	if !msg.HasWord(candidateWords...) && !msg.HasWord(listVerbs...) {
		return false
	}
	if msg.HasWord(otherDomainNouns...) {
		return false
	}
	return hasDateExpression(msg, d.now().Location())
}

func matchQuickInsight(msg Normalized) bool {
	_, ok := quickInsights[msg.Bare()]
	return ok
}

// matchStatusSearch only claims candidate statuses: a message naming another
// domain noun ("rejected applications", "interviews on hold") is left to the
// later rules, and place names ("new york") are not read as statuses.
func matchStatusSearch(msg Normalized) bool {
	if msg.HasWord(otherDomainNouns...) {
		return false
	}
	_, exact, ok := MatchStatus(stripLocations(msg.Bare()))
	if !ok {
		return false
	}
	return exact || msg.HasWord(statusContext...) || msg.WordCount() <= 3
}

func matchClientSearch(msg Normalized) bool {
	if msg.HasWord(clientWords...) {
		return true
	}
	n := msg.WordCount()
	if n == 0 || n > 4 {
		return false
	}
	last := strings.Trim(msg.Words[n-1], ".,!?;:")
	return corporateSuffixes[last]
}

func matchNameCascade(msg Normalized) bool {
	n := msg.WordCount()
	if n < 1 || n > 4 {
		return false
	}
	for _, w := range msg.Words {
		w = strings.Trim(w, ".,!?;:'\"()")
		if w == "" || commandWords[w] {
			return false
		}
	}
	return true
}

func matchJobMatching(msg Normalized) bool {
	if msg.Contains(jobMatchPhrases...) {
		return true
	}
	if !msg.Contains("job") {
		return false
	}
	if _, ok := ExtractExperience(msg.Lower); ok {
		return true
	}
	return msg.Contains("skill")
}

func matchJobKeyword(msg Normalized) bool {
	if msg.WordCount() > 4 || !msg.HasWord(jobWords...) || entityIDPattern.MatchString(msg.Lower) {
		return false
	}
	if asksForCount(msg) {
		return false
	}
	return searchTerm(msg, jobWords...) != ""
}

func matchDomainNoun(msg Normalized) bool {
	return msg.Contains("job", "candidate", "application", "interview")
}

func matchGreeting(msg Normalized) bool {
	if len(msg.Words) > 0 {
		first := strings.Trim(msg.Words[0], ".,!?;:")
		for _, g := range greetings {
			if first == g {
				return true
			}
		}
	}
	for _, p := range greetingPrefixes {
		if strings.HasPrefix(msg.Lower, p) {
			return true
		}
	}
	return false
}
