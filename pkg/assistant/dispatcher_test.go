package assistant

import (
	"context"
	"errors"
	"testing"

	"ats-assistant-be/pkg/ats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	d := newTestDispatcher(&fakeATS{})

	tests := []struct {
		message string
		want    string
	}{
		{"dashboard", RuleMenuNavigation},
		{"Go to Candidates", RuleMenuNavigation},
		{"open the settings page", RuleMenuNavigation},
		{"add job", RuleMenuNavigation},
		{"yesterday list", RuleCandidatesByDate},
		{"candidates added on 14-01-2025", RuleCandidatesByDate},
		{"new applications", RuleQuickInsight},
		{"Pending follow-up", RuleQuickInsight},
		{"remind recruiters", RuleQuickInsight},
		{"send interview reminders", RuleQuickInsight},
		{"Priya Sharma", RuleRecruiterActivity},
		{"Priya today", RuleRecruiterActivity},
		{"Globex Technologies", RuleRecruiterActivity}, // capitalised company read as a name
		{"candidates added by priya yesterday", RuleRecruiterAttribution},
		{"show candidates without resume", RuleMissingDocuments},
		{"upcoming interviews", RuleInterviewsInRange},
		{"interviews tomorrow", RuleInterviewsInRange},
		{"status summary", RuleCandidateSummary},
		{"pending", RuleStatusSearch},
		{"Pending", RuleStatusSearch},
		{"shortlisted candidates", RuleStatusSearch},
		{"who is on hold", RuleStatusSearch},
		{"client acme", RuleClientSearch},
		{"globex technologies", RuleClientSearch},
		{"java developer", RuleNameCascade},
		{"Find jobs for me with Java and 5 years experience in Bangalore", RuleJobMatching},
		{"java jobs", RuleJobKeywordSearch},
		{"accountant jobs", RuleJobKeywordSearch},
		{"how many candidates", RuleDomainSummary},
		{"how many jobs", RuleDomainSummary},
		{"count jobs", RuleDomainSummary},
		{"total jobs", RuleDomainSummary},
		{"number of jobs", RuleDomainSummary},
		{"new applications today", RuleDomainSummary},
		{"rejected applications", RuleDomainSummary},
		{"interviews on hold", RuleDomainSummary},
		{"candidates in new york", RuleDomainSummary},
		{"show me job #12", RuleDomainSummary},
		{"close job #12", RuleDomainSummary},
		{"put job #3 on hold", RuleDomainSummary},
		{"help", RuleHelp},
		{"what can you do", RuleHelp},
		{"hello", RuleGreeting},
		{"good morning", RuleGreeting},
		{"what is the meaning of life", RuleFallback},
		{"", RuleFallback},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Classify(tt.message))
		})
	}
}

func TestMonthLikeWordsAreNotDates(t *testing.T) {
	d := newTestDispatcher(&fakeATS{})
	assert.NotEqual(t, RuleCandidatesByDate, d.Classify("marketing 12 2025 candidates"))
	assert.NotEqual(t, RuleCandidatesByDate, d.Classify("decision 3 candidates"))
}

func TestClassifyIsDeterministic(t *testing.T) {
	d := newTestDispatcher(&fakeATS{})
	for _, msg := range []string{"pending", "java jobs", "Priya Sharma", "random words here and there"} {
		first := d.Classify(msg)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, d.Classify(msg), msg)
		}
	}
}

func TestRuleTableOrder(t *testing.T) {
	d := newTestDispatcher(&fakeATS{})

	names := make([]string, 0)
	for _, r := range d.Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		RuleMenuNavigation, RuleCandidatesByDate, RuleQuickInsight, RuleRecruiterActivity,
		RuleRecruiterAttribution, RuleMissingDocuments, RuleInterviewsInRange, RuleCandidateSummary,
		RuleStatusSearch, RuleClientSearch, RuleNameCascade, RuleJobMatching, RuleJobKeywordSearch,
		RuleDomainSummary, RuleHelp, RuleGreeting, RuleFallback,
	}, names)
}

func TestRecruiterRulesExcludeAttribution(t *testing.T) {
	d := newTestDispatcher(&fakeATS{})
	rules := d.Rules()

	msg := Normalize("candidates added by Priya today")
	assert.False(t, rules[1].Match(msg), "date rule must not claim attribution queries")
	assert.False(t, rules[3].Match(msg), "activity rule must not claim attribution queries")
	assert.True(t, rules[4].Match(msg))
}

func TestScenarioStatusSearch(t *testing.T) {
	f := &fakeATS{candidates: []ats.Candidate{
		{ID: 1, FirstName: "Asha", LastName: "Rao", Status: "PENDING"},
		{ID: 2, FirstName: "Ben", LastName: "Ng", Status: "NEW"},
		{ID: 3, FirstName: "Cara", LastName: "Diaz", Status: "PENDING"},
	}}

	resp := newTestDispatcher(f).Dispatch(context.Background(), "pending")

	require.Equal(t, KindResults, resp.Kind)
	assert.Equal(t, "Found 2 candidate(s) with status PENDING:", resp.Message)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Asha Rao", resp.Items[0].Name)
	assert.Equal(t, "/candidates/3", resp.Items[1].Navigate)
	assert.Equal(t, ItemCandidate, resp.Items[1].Type)
}

func TestScenarioYesterdayList(t *testing.T) {
	f := &fakeATS{candidates: []ats.Candidate{
		{ID: 1, FirstName: "A", CreatedAt: at(14, 9, 0)},
		{ID: 2, FirstName: "B", CreatedAt: at(14, 15, 30)},
		{ID: 3, FirstName: "C", CreatedAt: at(14, 23, 59)},
		{ID: 4, FirstName: "D", CreatedAt: at(15, 8, 0)},
		{ID: 5, FirstName: "E", CreatedAt: at(15, 9, 30)},
	}}

	resp := newTestDispatcher(f).Dispatch(context.Background(), "yesterday list")

	require.Equal(t, KindResults, resp.Kind)
	assert.Len(t, resp.Items, 3)
	assert.Contains(t, resp.Message, "Tuesday, January 14, 2025")
}

func TestScenarioJobKeywordSearch(t *testing.T) {
	f := &fakeATS{jobs: []ats.Job{
		{ID: 1, JobName: "Java Dev", Status: "ACTIVE", SkillsName: "Java,Spring"},
		{ID: 2, JobName: "Data Analyst", Status: "ACTIVE", SkillsName: "SQL"},
		{ID: 3, JobName: "Java Lead", Status: "CLOSED", SkillsName: "Java"},
	}}

	resp := newTestDispatcher(f).Dispatch(context.Background(), "java jobs")

	require.Equal(t, KindResults, resp.Kind)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Java Dev", resp.Items[0].Name)
	assert.Equal(t, "/jobs/1", resp.Items[0].Navigate)
}

func TestScenarioJobMatching(t *testing.T) {
	f := &fakeATS{jobs: []ats.Job{
		{ID: 1, JobName: "Backend Engineer", Status: "ACTIVE", SkillsName: "Python", Experience: "10-12 years", Location: "Mumbai"},
		{ID: 2, JobName: "Java Developer", Status: "ACTIVE", SkillsName: "Java, Spring Boot", Experience: "4-6 years", Location: "Bangalore"},
	}}

	resp := newTestDispatcher(f).Dispatch(context.Background(), "Find jobs for me with Java and 5 years experience in Bangalore")

	require.Equal(t, KindResults, resp.Kind)
	require.NotEmpty(t, resp.Items)
	assert.Equal(t, "Java Developer", resp.Items[0].Name)
	assert.Contains(t, resp.Items[0].DisplayText, "score 45")
	assert.Contains(t, resp.Message, "skills: java")
}

func TestScenarioDashboard(t *testing.T) {
	resp := newTestDispatcher(&fakeATS{}).Dispatch(context.Background(), "dashboard")

	assert.Equal(t, KindNavigation, resp.Kind)
	assert.Equal(t, "/dashboard", resp.Path)
	assert.Equal(t, "Dashboard", resp.EntityLabel)
}

func TestScenarioFetchFailure(t *testing.T) {
	f := &fakeATS{err: errors.New("TypeError: Failed to fetch")}

	resp := newTestDispatcher(f).Dispatch(context.Background(), "java jobs")

	assert.Equal(t, KindText, resp.Kind)
	assert.Equal(t, connectivityMessage, resp.Message)
}

func TestDispatchSessionExpired(t *testing.T) {
	f := &fakeATS{err: &ats.APIError{Status: 401, Method: "GET", Path: "/api/candidates"}}

	resp := newTestDispatcher(f).Dispatch(context.Background(), "missing documents")

	assert.Equal(t, authMessage, resp.Message)
}

func TestFallbackTotality(t *testing.T) {
	inputs := []string{"", "   ", "🙂", "asdf qwer zxcv uiop hjkl", "why is the sky blue", "???", "Is it raining?"}

	for _, chat := range []*fakeATS{{}, {chatErr: errors.New("boom")}} {
		d := newTestDispatcher(chat)
		for _, in := range inputs {
			var resp Response
			require.NotPanics(t, func() { resp = d.Dispatch(context.Background(), in) }, in)
			assert.Equal(t, KindText, resp.Kind, in)
			assert.NotEmpty(t, resp.Message, in)
		}
	}
}

func TestFallbackUsesChatBackend(t *testing.T) {
	d := newTestDispatcher(&fakeATS{chatReply: "The office opens at 9."})

	resp := d.Dispatch(context.Background(), "when does the office open tomorrow morning")

	assert.Equal(t, "The office opens at 9.", resp.Message)
}

func TestFallbackCannedByQuestionType(t *testing.T) {
	d := newTestDispatcher(&fakeATS{chatErr: errors.New("unavailable")})

	tests := []struct {
		message string
		want    string
	}{
		{"how does the weather look outside today and tomorrow", "I'm not sure how"},
		{"why is the sky blue", "I can't explain"},
		{"where is the office located these days", "interview schedules"},
		{"does the office have parking for everyone", "not able to confirm"},
		{"blah blah blah blah blah", "didn't quite understand"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Contains(t, d.Dispatch(context.Background(), tt.message).Message, tt.want)
		})
	}
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	d := NewDispatcher(Deps{Directories: ats.Directories{}})

	var resp Response
	require.NotPanics(t, func() { resp = d.Dispatch(context.Background(), "java jobs") })
	assert.Equal(t, KindText, resp.Kind)
	assert.Contains(t, resp.Message, "Please try again later")
}

func TestAnswerReportsRule(t *testing.T) {
	d := newTestDispatcher(&fakeATS{})

	rule, resp := d.Answer(context.Background(), "dashboard")
	assert.Equal(t, RuleMenuNavigation, rule)
	assert.Equal(t, KindNavigation, resp.Kind)

	rule, _ = NewDispatcher(Deps{}).Answer(context.Background(), "java jobs")
	assert.Equal(t, RuleJobKeywordSearch, rule, "panicking handler keeps its rule name")
}
