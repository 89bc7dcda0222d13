package finding

import (
	"encoding/json"
	"fmt"

	"github.com/sec-tools/inspector-notify/pkg/models/domain"
)

// BuildPrompt renders the fixed instruction plus a canonical JSON dump
// of the normalized finding. Deterministic for a given finding, so
// model input is reproducible in tests.
func BuildPrompt(f domain.NormalizedFinding) string {
	var platformInfo string
	if f.Platform != defaultUnknown {
		platformInfo = fmt.Sprintf(" The EC2 instance is running %s.", f.Platform)
	}

	// MarshalIndent on a struct cannot fail; keep payload as the raw
	// struct rendering so prompts stay byte-stable across releases.
	payload, _ := json.MarshalIndent(f, "", "  ")

	return fmt.Sprintf(
		"You are an experienced cloud security engineer.\n\n"+
			"%s\n"+
			"You are given a JSON representation of an Amazon Inspector finding on an EC2 instance.\n"+
			"1. Explain the vulnerability in clear, concise language.\n"+
			"2. Provide specific remediation steps, including relevant Linux commands.\n"+
			"3. Keep the answer under 600 words.\n\n"+
			"Finding JSON:\n%s",
		platformInfo, payload,
	)
}
