package domain

// Severities Inspector is known to emit. Anything else is passed
// through unchanged but logged as unexpected.
var KnownSeverities = map[string]struct{}{
	"CRITICAL":      {},
	"HIGH":          {},
	"MEDIUM":        {},
	"LOW":           {},
	"INFORMATIONAL": {},
	"UNTRIAGED":     {},
	"UNKNOWN":       {},
}

// NormalizedFinding is the bounded, default-filled projection of a
// finding fed to the text model. Field order and JSON tags are part of
// the prompt contract: the serialized form must be stable.
type NormalizedFinding struct {
	VulnerabilityID string   `json:"vulnerability_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Severity        string   `json:"severity"`
	InspectorScore  *float64 `json:"inspector_score"`
	ResourceType    string   `json:"resource_type"`
	Platform        string   `json:"platform"`
	ImageID         string   `json:"image_id"`
	FirstObservedAt string   `json:"first_observed_at,omitempty"`
	LastObservedAt  string   `json:"last_observed_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
}
