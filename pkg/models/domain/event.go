package domain

// Event is the EventBridge envelope delivered when Amazon Inspector
// emits a finding. Detail is nil when the envelope carries no payload.
type Event struct {
	Source     string   `json:"source"`
	DetailType string   `json:"detail-type"`
	Account    string   `json:"account"`
	Region     string   `json:"region"`
	Detail     *Finding `json:"detail"`
}

// Finding is the Inspector finding carried in Event.Detail. Every field
// is optional; consumers default absent values rather than erroring.
type Finding struct {
	FindingARN      string       `json:"findingArn,omitempty"`
	Severity        string       `json:"severity,omitempty"`
	Status          string       `json:"status,omitempty"`
	Title           string       `json:"title,omitempty"`
	Description     string       `json:"description,omitempty"`
	Type            string       `json:"type,omitempty"`
	InspectorScore  *float64     `json:"inspectorScore,omitempty"`
	Remediation     *Remediation `json:"remediation,omitempty"`
	Resources       []Resource   `json:"resources,omitempty"`
	FirstObservedAt string       `json:"firstObservedAt,omitempty"`
	LastObservedAt  string       `json:"lastObservedAt,omitempty"`
	UpdatedAt       string       `json:"updatedAt,omitempty"`

	PackageVulnerabilityDetails *PackageVulnerabilityDetails `json:"packageVulnerabilityDetails,omitempty"`
}

type Remediation struct {
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// Recommendation is the remediation hint AWS attaches to a finding,
// distinct from the model-generated guidance in RecommendationResult.
type Recommendation struct {
	URL string `json:"Url,omitempty"`
}

type Resource struct {
	Type    string           `json:"type,omitempty"`
	ID      string           `json:"id,omitempty"`
	Region  string           `json:"region,omitempty"`
	Details *ResourceDetails `json:"details,omitempty"`
}

type ResourceDetails struct {
	AwsEc2Instance *Ec2Instance `json:"awsEc2Instance,omitempty"`
}

type Ec2Instance struct {
	Platform string `json:"platform,omitempty"`
	ImageID  string `json:"imageId,omitempty"`
}

type PackageVulnerabilityDetails struct {
	VulnerabilityID string   `json:"vulnerabilityId,omitempty"`
	SourceSeverity  string   `json:"sourceSeverity,omitempty"`
	ReferenceURLs   []string `json:"referenceUrls,omitempty"`
}

// PrimaryResource returns the first affected resource, or an empty
// placeholder when the finding lists none.
func (f *Finding) PrimaryResource() Resource {
	if f == nil || len(f.Resources) == 0 {
		return Resource{}
	}
	return f.Resources[0]
}
