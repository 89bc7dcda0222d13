package finding

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sec-tools/inspector-notify/pkg/models/domain"
)

const (
	// Caps keep prompt token usage bounded regardless of what the
	// scanner puts in free-text fields.
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

const (
	defaultUnknown = "Unknown"
	defaultNA      = "N/A"
)

// Normalize projects an Inspector event into the bounded shape used for
// prompting. It fails only when the event has no detail payload; every
// optional field defaults instead of erroring.
func Normalize(ctx context.Context, event domain.Event) (domain.NormalizedFinding, error) {
	logger := zerolog.Ctx(ctx)

	detail := event.Detail
	if detail == nil {
		return domain.NormalizedFinding{}, domain.ErrMissingDetail
	}

	severity := orDefault(detail.Severity, "UNKNOWN")
	if _, ok := domain.KnownSeverities[severity]; !ok {
		logger.Warn().Str("severity", severity).Msg("unexpected severity value")
	}

	title, truncated := clip(orDefault(detail.Title, defaultUnknown), MaxTitleLen)
	if truncated {
		logger.Info().Int("limit", MaxTitleLen).Msg("truncated finding title")
	}

	description, truncated := clip(orDefault(detail.Description, defaultNA), MaxDescriptionLen)
	if truncated {
		logger.Info().Int("limit", MaxDescriptionLen).Msg("truncated finding description")
	}

	primary := detail.PrimaryResource()
	var platform, imageID string
	if primary.Details != nil && primary.Details.AwsEc2Instance != nil {
		platform = primary.Details.AwsEc2Instance.Platform
		imageID = primary.Details.AwsEc2Instance.ImageID
	}

	var vulnerabilityID string
	if detail.PackageVulnerabilityDetails != nil {
		vulnerabilityID = detail.PackageVulnerabilityDetails.VulnerabilityID
	}

	return domain.NormalizedFinding{
		VulnerabilityID: orDefault(vulnerabilityID, defaultNA),
		Title:           title,
		Description:     description,
		Severity:        severity,
		InspectorScore:  detail.InspectorScore,
		ResourceType:    orDefault(primary.Type, defaultUnknown),
		Platform:        orDefault(platform, defaultUnknown),
		ImageID:         orDefault(imageID, defaultNA),
		FirstObservedAt: detail.FirstObservedAt,
		LastObservedAt:  detail.LastObservedAt,
		UpdatedAt:       detail.UpdatedAt,
	}, nil
}

// clip bounds s to max runes and reports whether anything was cut.
func clip(s string, max int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= max {
		return s, false
	}
	return string(runes[:max]), true
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
