package assistant

import "context"

// Predicate decides whether a rule claims a message.
type Predicate func(msg Normalized) bool

// Handler answers a message claimed by its rule.
type Handler func(ctx context.Context, msg Normalized) Response

// Rule pairs a predicate with its handler. Rules are tried in table order.
type Rule struct {
	Name   string
	Match  Predicate
	Handle Handler
}

// Select returns the first rule whose predicate holds. Later rules are never
// evaluated once one matches.
func Select(rules []Rule, msg Normalized) (Rule, bool) {
	for _, r := range rules {
		if r.Match != nil && r.Match(msg) {
			return r, true
		}
	}
	return Rule{}, false
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return func(msg Normalized) bool { return !p(msg) }
}

// All holds when every predicate holds, evaluated left to right.
func All(ps ...Predicate) Predicate {
	return func(msg Normalized) bool {
		for _, p := range ps {
			if !p(msg) {
				return false
			}
		}
		return true
	}
}
