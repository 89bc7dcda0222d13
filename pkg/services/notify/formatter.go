package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sec-tools/inspector-notify/pkg/models/domain"
)

// MaxSubjectLen is the hard cap SNS places on subject lines.
const MaxSubjectLen = 100

const ellipsis = "..."

// BuildSubject renders "[Inspector] {severity} - {type} - {title}".
// Newlines and runs of whitespace in the title are collapsed, and the
// final subject never exceeds MaxSubjectLen: the title portion is cut
// first and marked with an ellipsis.
func BuildSubject(f *domain.Finding) string {
	if f == nil {
		f = &domain.Finding{}
	}

	severity := f.Severity
	if severity == "" {
		severity = "UNKNOWN"
	}
	findingType := f.Type
	if findingType == "" {
		findingType = "UNKNOWN_TYPE"
	}
	title := strings.Join(strings.Fields(f.Title), " ")
	if title == "" {
		title = "Inspector Finding"
	}

	prefix := fmt.Sprintf("[Inspector] %s - %s - ", severity, findingType)
	subject := prefix + title
	if len([]rune(subject)) <= MaxSubjectLen {
		return subject
	}

	avail := MaxSubjectLen - len([]rune(prefix))
	if avail > len(ellipsis) {
		runes := []rune(title)
		return prefix + string(runes[:avail-len(ellipsis)]) + ellipsis
	}

	// Severity and type alone blew the budget; keep whatever fits.
	return string([]rune(subject)[:MaxSubjectLen])
}

// BuildBody renders the notification text: finding summary, the
// model-generated guidance under an explicit AI disclaimer, and the raw
// event for audit. rawEvent, when non-nil, is the payload exactly as
// received; otherwise the typed event is re-serialized.
func BuildBody(event domain.Event, rawEvent []byte, rec domain.RecommendationResult) string {
	account := orUnknown(event.Account)
	region := orUnknown(event.Region)

	detail := event.Detail
	if detail == nil {
		detail = &domain.Finding{}
	}

	guidance := strings.TrimSpace(rec.Text)
	if guidance == "" {
		guidance = "No remediation recommendations available at this time."
	}

	lines := []string{
		"New Amazon Inspector Finding",
		strings.Repeat("=", 60),
		"",
		fmt.Sprintf("Account: %s", account),
		fmt.Sprintf("Region: %s", region),
		"",
		fmt.Sprintf("Severity: %s", orUnknown(detail.Severity)),
		fmt.Sprintf("Status: %s", orUnknown(detail.Status)),
		"",
		fmt.Sprintf("Title: %s", orNA(detail.Title)),
		fmt.Sprintf("Description: %s", orNA(detail.Description)),
		"",
		fmt.Sprintf("Finding ARN: %s", orNA(detail.FindingARN)),
		fmt.Sprintf("Finding Type: %s", orNA(detail.Type)),
	}

	if url := remediationURL(detail); url != "" {
		lines = append(lines, "", fmt.Sprintf("AWS Recommendation: %s", url))
	}

	lines = append(lines,
		"",
		"AI-Generated Remediation Guidance:",
		strings.Repeat("-", 60),
		guidance,
		"",
		"Note: AI recommendations should be validated before implementation.",
		"",
		"Raw Inspector Finding:",
		strings.Repeat("-", 60),
		rawJSON(event, rawEvent),
	)

	return strings.Join(lines, "\n")
}

func remediationURL(f *domain.Finding) string {
	if f.Remediation == nil || f.Remediation.Recommendation == nil {
		return ""
	}
	url := f.Remediation.Recommendation.URL
	if url == "N/A" {
		return ""
	}
	return url
}

func rawJSON(event domain.Event, raw []byte) string {
	if len(raw) == 0 {
		out, err := json.MarshalIndent(event, "", "  ")
		if err != nil {
			return "{}"
		}
		return string(out)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "UNKNOWN"
	}
	return s
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
