package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrygo/portfolioai/ai/internal/strutil"
	"github.com/hrygo/portfolioai/ai/knowledge"
)

// quickReviewLimit caps the content sent for a quick review, in runes.
const quickReviewLimit = 2000

// DefaultAudience is used when slide options name none.
const DefaultAudience = "government leadership"

// ReviewRequest is material handed to the critique specialist.
type ReviewRequest struct {
	Content         string
	SourceAgent     string
	OriginalRequest string
}

// Message frames the material as a structured review request.
func (r ReviewRequest) Message() string {
	var b strings.Builder
	b.WriteString("## Review Request\n\n**Content to review:**\n")
	b.WriteString(r.Content)
	b.WriteString("\n\n")
	if r.SourceAgent != "" {
		fmt.Fprintf(&b, "**Source:** %s\n", r.SourceAgent)
	}
	if r.OriginalRequest != "" {
		fmt.Fprintf(&b, "**Original Request:** %s\n", r.OriginalRequest)
	}
	b.WriteString(`---
Provide a comprehensive review including:
1. Summary of the content
2. Strengths
3. Areas for improvement
4. Specific suggestions
5. Overall assessment`)
	return b.String()
}

// Review asks critic to review r.
func Review(ctx context.Context, critic Invoker, r ReviewRequest) *Result {
	return critic.Invoke(ctx, Request{Message: r.Message(), Direct: true})
}

// QuickReview asks for a short review of possibly long content.
func QuickReview(ctx context.Context, critic Invoker, content string) *Result {
	msg := fmt.Sprintf(`Provide a quick review of the following content:

%s

Give:
- Top 3 strengths
- Top 3 areas for improvement
- One key recommendation`, strutil.Truncate(content, quickReviewLimit))
	return critic.Invoke(ctx, Request{Message: msg, Direct: true})
}

// SlideOptions tune FormatForSlides.
type SlideOptions struct {
	Slides   int
	Audience string
}

// SlidesMessage frames content for the presentation formatter.
func SlidesMessage(content string, opts SlideOptions) string {
	audience := opts.Audience
	if audience == "" {
		audience = DefaultAudience
	}
	var b strings.Builder
	b.WriteString("## Content to Convert to Presentation\n\n")
	fmt.Fprintf(&b, "**Target Audience:** %s\n", audience)
	if opts.Slides > 0 {
		fmt.Fprintf(&b, "**Target Number of Slides:** %d\n", opts.Slides)
	}
	b.WriteString("\n**Original Content:**\n")
	b.WriteString(content)
	b.WriteString(`

---
Convert this content into presentation slides:
1. Use action titles that state the key message
2. Keep 4-6 points per slide
3. Include supporting data where available
4. Add presenter notes for each slide`)
	return b.String()
}

// FormatForSlides asks formatter to restructure content as slides.
func FormatForSlides(ctx context.Context, formatter Invoker, content string, opts SlideOptions) *Result {
	return formatter.Invoke(ctx, Request{Message: SlidesMessage(content, opts), Direct: true})
}

// DraftFollowUp asks the follow-up specialist for a formal email to one
// entity. requests lists what is missing; when empty, the entity's gaps are
// taken from kb.
func DraftFollowUp(ctx context.Context, followUp Invoker, kb *knowledge.Store, entity string, requests []string) *Result {
	report := strings.Join(requests, "\n")
	if len(requests) == 0 && kb != nil {
		for _, ef := range MissingByEntity(kb.EventsByOrganization(entity)) {
			for _, it := range ef.Items {
				report += fmt.Sprintf("- %s: %s\n", it.Event, strings.Join(it.Missing, ", "))
			}
		}
	}
	if strings.TrimSpace(report) == "" {
		report = "No missing information recorded."
	}
	msg := fmt.Sprintf("Draft a formal follow-up email to %s.\n\nMissing information:\n%s", entity, strings.TrimRight(report, "\n"))
	return followUp.Invoke(ctx, Request{Message: msg, Knowledge: kb, Direct: true})
}
