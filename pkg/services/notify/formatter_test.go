package notify

import (
	"strings"
	"testing"

	"github.com/sec-tools/inspector-notify/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSubjectFormat(t *testing.T) {
	subject := BuildSubject(&domain.Finding{
		Severity: "HIGH",
		Type:     "PACKAGE_VULNERABILITY",
		Title:    "CVE-2024-1234 - kernel",
	})

	assert.Equal(t, "[Inspector] HIGH - PACKAGE_VULNERABILITY - CVE-2024-1234 - kernel", subject)
}

func TestBuildSubjectCollapsesWhitespace(t *testing.T) {
	subject := BuildSubject(&domain.Finding{
		Severity: "LOW",
		Type:     "PACKAGE_VULNERABILITY",
		Title:    "CVE-2024-1234\n  kernel \t issue",
	})

	assert.Contains(t, subject, "CVE-2024-1234 kernel issue")
	assert.NotContains(t, subject, "\n")
}

func TestBuildSubjectDefaults(t *testing.T) {
	subject := BuildSubject(nil)

	assert.Equal(t, "[Inspector] UNKNOWN - UNKNOWN_TYPE - Inspector Finding", subject)
}

func TestBuildSubjectLengthCap(t *testing.T) {
	tests := []struct {
		name    string
		finding domain.Finding
	}{
		{
			name: "long title",
			finding: domain.Finding{
				Severity: "HIGH",
				Type:     "PACKAGE_VULNERABILITY",
				Title:    strings.Repeat("x", 300),
			},
		},
		{
			name: "title at boundary",
			finding: domain.Finding{
				Severity: "HIGH",
				Type:     "PACKAGE_VULNERABILITY",
				Title:    strings.Repeat("y", 100),
			},
		},
		{
			name: "oversized severity and type",
			finding: domain.Finding{
				Severity: strings.Repeat("S", 60),
				Type:     strings.Repeat("T", 60),
				Title:    "short",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject := BuildSubject(&tt.finding)
			assert.LessOrEqual(t, len([]rune(subject)), MaxSubjectLen)
		})
	}
}

func TestBuildSubjectEllipsisOnTruncation(t *testing.T) {
	subject := BuildSubject(&domain.Finding{
		Severity: "HIGH",
		Type:     "PACKAGE_VULNERABILITY",
		Title:    strings.Repeat("x", 300),
	})

	assert.Len(t, []rune(subject), MaxSubjectLen)
	assert.True(t, strings.HasSuffix(subject, "..."))
	assert.True(t, strings.HasPrefix(subject, "[Inspector] HIGH - PACKAGE_VULNERABILITY - "))
}

func sampleEvent() domain.Event {
	return domain.Event{
		Source:     "aws.inspector2",
		DetailType: "Inspector2 Finding",
		Account:    "123456789012",
		Region:     "us-west-2",
		Detail: &domain.Finding{
			FindingARN:  "arn:aws:inspector2:us-west-2:123456789012:finding/abc",
			Severity:    "HIGH",
			Status:      "ACTIVE",
			Title:       "CVE-2024-1234 - kernel",
			Description: "A flaw in the kernel.",
			Type:        "PACKAGE_VULNERABILITY",
		},
	}
}

func TestBuildBodyContents(t *testing.T) {
	body := BuildBody(sampleEvent(), nil, domain.Generated("Patch the kernel."))

	assert.Contains(t, body, "New Amazon Inspector Finding")
	assert.Contains(t, body, "Account: 123456789012")
	assert.Contains(t, body, "Region: us-west-2")
	assert.Contains(t, body, "Severity: HIGH")
	assert.Contains(t, body, "Status: ACTIVE")
	assert.Contains(t, body, "Title: CVE-2024-1234 - kernel")
	assert.Contains(t, body, "Finding ARN: arn:aws:inspector2:us-west-2:123456789012:finding/abc")
	assert.Contains(t, body, "AI-Generated Remediation Guidance:")
	assert.Contains(t, body, "Patch the kernel.")
	assert.Contains(t, body, "Raw Inspector Finding:")

	// Guidance section comes before the raw dump.
	require.Less(t,
		strings.Index(body, "AI-Generated Remediation Guidance:"),
		strings.Index(body, "Raw Inspector Finding:"),
	)
}

func TestBuildBodyRemediationURL(t *testing.T) {
	event := sampleEvent()
	event.Detail.Remediation = &domain.Remediation{
		Recommendation: &domain.Recommendation{URL: "https://example.com/fix"},
	}

	body := BuildBody(event, nil, domain.Generated("Patch."))
	assert.Contains(t, body, "AWS Recommendation: https://example.com/fix")
}

func TestBuildBodySkipsPlaceholderURL(t *testing.T) {
	event := sampleEvent()
	event.Detail.Remediation = &domain.Remediation{
		Recommendation: &domain.Recommendation{URL: "N/A"},
	}

	body := BuildBody(event, nil, domain.Generated("Patch."))
	assert.NotContains(t, body, "AWS Recommendation:")
}

func TestBuildBodyBlankRecommendation(t *testing.T) {
	body := BuildBody(sampleEvent(), nil, domain.RecommendationResult{Text: "   "})

	assert.Contains(t, body, "No remediation recommendations available at this time.")
}

func TestBuildBodyUsesRawPayload(t *testing.T) {
	raw := []byte(`{"source":"aws.inspector2","custom_field":"kept-verbatim"}`)

	body := BuildBody(sampleEvent(), raw, domain.Generated("Patch."))
	assert.Contains(t, body, "kept-verbatim")
}

func TestBuildBodyMissingDetail(t *testing.T) {
	body := BuildBody(domain.Event{Account: "123456789012"}, nil, domain.FallbackFor(domain.ReasonMalformedEvent))

	assert.Contains(t, body, "Severity: UNKNOWN")
	assert.Contains(t, body, "Title: N/A")
}
