package domain

import "errors"

// Outcome classifies how the pipeline disposed of an event.
type Outcome string

const (
	OutcomeIgnored   Outcome = "ignored"
	OutcomeRejected  Outcome = "rejected"
	OutcomePublished Outcome = "published"
)

// Result is the structured confirmation returned for every processed
// event. MessageID and FindingARN are set only when Outcome is
// OutcomePublished; Reason explains ignored and rejected outcomes.
type Result struct {
	Outcome    Outcome `json:"outcome"`
	Reason     string  `json:"reason,omitempty"`
	MessageID  string  `json:"message_id,omitempty"`
	FindingARN string  `json:"finding_arn,omitempty"`
}

// Sentinel errors for rejected outcomes. The pipeline wraps them so
// callers can branch with errors.Is.
var (
	// ErrMissingTopic means the publish topic was not configured.
	ErrMissingTopic = errors.New("sns topic arn is not configured")
	// ErrMalformedEvent means the event payload could not be decoded.
	ErrMalformedEvent = errors.New("malformed event payload")
	// ErrMissingDetail means the event envelope has no detail payload.
	ErrMissingDetail = errors.New("event is missing detail")
	// ErrDeadline means too little execution budget remains to start
	// the enrichment call.
	ErrDeadline = errors.New("insufficient execution time remaining")
	// ErrPublish wraps a messaging channel failure.
	ErrPublish = errors.New("publish failed")
)
