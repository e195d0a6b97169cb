package foodlog

import "regexp"

// Classifier decides whether a reply needs a [FOOD_LOG] block. It is a
// plain func so tests and future tuning can swap it without touching the
// handler. The default is keyword heuristics tuned to observed model
// phrasing; an occasional misfire just means an extra follow-up call.
type Classifier func(reply, lastUserMessage string) bool

var (
	replyMentionsLoggingRe = regexp.MustCompile(`(?i)\b(log|logging|food log|add to your (log|app)|enter it|write it down|track(ing)?|manually)\b`)
	userAskedToLogRe       = regexp.MustCompile(`(?i)\b(log|help me log|can you log|let's log)\b`)
	caloriesRe             = regexp.MustCompile(`\d+\s*calories?`)
	parenBreakdownRe       = regexp.MustCompile(`(?i)\([^)]+\)\s*:\s*\d+`)
	boldBreakdownRe        = regexp.MustCompile(`(?i)\*\*[^*]+\*\*\s*:\s*\d+`)
)

// DefaultClassifier fires when any of three independent heuristics matches:
// the reply talks about logging, the user asked to log, or the reply is
// shaped like a meal breakdown (food name, colon, calorie number).
func DefaultClassifier(reply, lastUserMessage string) bool {
	if replyMentionsLoggingRe.MatchString(reply) {
		return true
	}
	if userAskedToLogRe.MatchString(lastUserMessage) {
		return true
	}
	return caloriesRe.MatchString(reply) &&
		(parenBreakdownRe.MatchString(reply) || boldBreakdownRe.MatchString(reply))
}
