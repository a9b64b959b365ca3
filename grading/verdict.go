// Package grading asks an external text-generation service to review
// submitted code and turns its free-text reply into a verdict.
package grading

import (
	"context"
	"strings"
)

const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	UnavailableMessage = "AI reviewer unavailable. Please try again later."
	EmptyCodeMessage   = "No code was submitted. Please write your solution before submitting."
)

const (
	approvedMarker = "approved:"
	rejectedMarker = "rejected:"
)

type Verdict struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
}

func (v Verdict) Approved() bool {
	return v.Status == StatusApproved
}

// Reviewer grades a submission. Implementations never return an error: any
// failure is reported as a rejected verdict.
type Reviewer interface {
	Review(ctx context.Context, code, taskDescription string) Verdict
}

// ParseVerdict reads the leading marker of a reply. A reply without a marker
// is rejected and keeps its whole text as feedback.
func ParseVerdict(reply string) Verdict {
	text := strings.TrimSpace(reply)
	if text == "" {
		return Verdict{Status: StatusRejected, Feedback: UnavailableMessage}
	}
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, approvedMarker):
		return Verdict{Status: StatusApproved, Feedback: strings.TrimSpace(text[len(approvedMarker):])}
	case strings.HasPrefix(lower, rejectedMarker):
		return Verdict{Status: StatusRejected, Feedback: strings.TrimSpace(text[len(rejectedMarker):])}
	default:
		return Verdict{Status: StatusRejected, Feedback: text}
	}
}

func reviewPrompt(code, taskDescription string) string {
	var b strings.Builder
	b.WriteString("You are an expert AI code reviewer for our learning platform.\n")
	b.WriteString("A student has submitted code for the following task:\n\n")
	b.WriteString(taskDescription)
	b.WriteString("\n\nStudent's code:\n```\n")
	b.WriteString(code)
	b.WriteString("\n```\n\n")
	b.WriteString("Check the code for correctness, good practice and whether it completes the task. ")
	b.WriteString("Give friendly, constructive feedback in Markdown: what was done well and what can be improved.\n")
	b.WriteString("Your reply MUST begin with exactly \"APPROVED:\" if the code is correct and complete, ")
	b.WriteString("or \"REJECTED:\" if it has significant errors or is incomplete, followed by the feedback.")
	return b.String()
}
