package finding

import (
	"testing"

	"github.com/sec-tools/inspector-notify/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildPromptDeterministic(t *testing.T) {
	f := domain.NormalizedFinding{
		VulnerabilityID: "CVE-2024-1234",
		Title:           "Kernel vulnerability",
		Description:     "A flaw in the kernel.",
		Severity:        "HIGH",
		ResourceType:    "AWS_EC2_INSTANCE",
		Platform:        "AMAZON_LINUX_2",
		ImageID:         "ami-0123456789abcdef0",
	}

	first := BuildPrompt(f)
	second := BuildPrompt(f)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "The EC2 instance is running AMAZON_LINUX_2.")
	assert.Contains(t, first, "under 600 words")
	assert.Contains(t, first, `"vulnerability_id": "CVE-2024-1234"`)
	assert.Contains(t, first, `"severity": "HIGH"`)
}

func TestBuildPromptSkipsUnknownPlatform(t *testing.T) {
	prompt := BuildPrompt(domain.NormalizedFinding{
		Title:    "Unknown",
		Platform: "Unknown",
	})

	assert.NotContains(t, prompt, "The EC2 instance is running")
	assert.Contains(t, prompt, "Finding JSON:")
}
