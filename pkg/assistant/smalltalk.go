package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const helpText = `Here's what I can help you with:

- Navigation: "dashboard", "jobs", "go to candidates", "add job"
- Candidates by date: "candidates added yesterday", "candidates on 15-01-2025"
- Status search: "pending", "shortlisted candidates", "who is on hold"
- Quick insights: "new applications", "pending follow-up", "missing documents", "today's interviews", "candidate summary"
- Recruiter activity: type a recruiter's name, or "candidates added by Priya last week"
- Interviews: "upcoming interviews", "interviews tomorrow"
- Job matching: "find jobs for me with Java and 5 years experience in Bangalore"
- Job search: "java jobs", "how many jobs", "job #12"
- Clients: "client Acme", "Globex Technologies"
- Reminders: "remind recruiters", "send interview reminders"

Type any job, client or candidate name and I'll open it for you.`

const greetingText = "Hello! I'm your ATS assistant. Ask me about candidates, jobs, clients, interviews or applications, or type \"help\" to see everything I can do."

var yesNoStarters = []string{"is", "are", "can", "could", "do", "does", "did", "will", "would", "should", "has", "have"}

func handleHelp(_ context.Context, _ Normalized) Response {
	return Text(helpText)
}

func handleGreeting(_ context.Context, _ Normalized) Response {
	return Text(greetingText)
}

// handleFallback hands the message to the generic chatbot backend and falls
// back to a canned answer when the backend fails or has nothing to say.
func (d *Dispatcher) handleFallback(ctx context.Context, msg Normalized) Response {
	if msg.Trimmed == "" || d.chat == nil {
		return Text(cannedAnswer(msg))
	}

	reply, err := d.chat.SendMessage(ctx, msg.Trimmed)
	if err != nil {
		d.logger.Warn("chatbot backend failed", zap.Error(err))
		return Text(cannedAnswer(msg))
	}
	if strings.TrimSpace(reply) == "" {
		return Text(cannedAnswer(msg))
	}
	return Text(reply)
}

// cannedAnswer picks a reply by question type.
func cannedAnswer(msg Normalized) string {
	first := ""
	if len(msg.Words) > 0 {
		first = strings.Trim(msg.Words[0], ".,!?;:")
	}

	switch {
	case first == "how":
		return "I'm not sure how to do that yet. I can look up candidates, jobs, clients, interviews and applications. Type \"help\" for examples."
	case first == "what":
		return "I don't have an answer for that. Type \"help\" to see the kinds of questions I can answer."
	case first == "why":
		return "I can't explain that one, but I can show you the data behind it. Try asking about candidates, jobs or interviews."
	case first == "when" || first == "where":
		return "I can look up interview schedules and job locations. Try \"upcoming interviews\" or \"jobs in Bangalore\"."
	case first == "who":
		return "I can find candidates and recruiters by name. Type a name, or try \"candidates added by <recruiter>\"."
	case isYesNoQuestion(first, msg.Trimmed):
		return "I'm not able to confirm that. Try rephrasing your question, or type \"help\" to see what I can do."
	default:
		return "I didn't quite understand that. Type \"help\" to see what I can do."
	}
}

func isYesNoQuestion(first, trimmed string) bool {
	for _, w := range yesNoStarters {
		if first == w {
			return true
		}
	}
	return strings.HasSuffix(trimmed, "?")
}
