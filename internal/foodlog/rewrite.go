package foodlog

import (
	"regexp"
	"strings"

	"flf-coach/internal/models"
)

// CallToAction is the fixed sentence inserted before the block.
const CallToAction = "Tap each item below to add it to your Food log."

// Sentences that contradict the tool-assisted-logging directive. The model
// sometimes emits them anyway; they read as broken next to the tap-to-log
// buttons, so they are stripped from the visible reply.
var fillerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*(I can't (directly )?log[^.!?]*[.!?]|Just (add|enter|write)[^.!?]*[.!?]|To log your meal[^.!?]*[.!?]|you can (start|mark)[^.!?]*[.!?])\s*`),
	regexp.MustCompile(`(?i)\s*(If you're using a food diary[^.!?]*[.!?]|Make sure to note[^.!?]*[.!?])\s*`),
}

// Rewrite strips filler sentences from the reply, appends the call to
// action, then the canonical block. The result carries exactly one block.
func Rewrite(reply string, block *models.FoodLogBlock) string {
	for _, re := range fillerRes {
		reply = re.ReplaceAllString(reply, " ")
	}
	reply = strings.TrimSpace(reply)
	if reply != "" && !strings.HasSuffix(reply, ".") {
		reply += "."
	}
	return reply + "\n\n" + CallToAction + "\n\n" + Format(block)
}
