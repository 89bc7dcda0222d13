package domain

// FallbackReason classifies why generated guidance was replaced with a
// canned sentence.
type FallbackReason string

const (
	ReasonMalformedEvent FallbackReason = "malformed_event"
	ReasonUnavailable    FallbackReason = "service_unavailable"
	ReasonEmpty          FallbackReason = "empty_completion"
	ReasonBadResponse    FallbackReason = "bad_response"
	ReasonInternal       FallbackReason = "internal_error"
)

// RecommendationResult is the remediation guidance attached to a
// notification. Text is never empty: when generation fails, Fallback is
// true, Reason says why, and Text holds a fixed safe sentence.
type RecommendationResult struct {
	Text     string
	Fallback bool
	Reason   FallbackReason
}

// Generated wraps model output as a successful result.
func Generated(text string) RecommendationResult {
	return RecommendationResult{Text: text}
}

// FallbackFor returns the canned result for a failure class.
func FallbackFor(reason FallbackReason) RecommendationResult {
	return RecommendationResult{Text: fallbackText[reason], Fallback: true, Reason: reason}
}

var fallbackText = map[FallbackReason]string{
	ReasonMalformedEvent: "Unable to process finding: event is missing finding details.",
	ReasonUnavailable:    "LLM service temporarily unavailable.",
	ReasonEmpty:          "LLM generated no recommendations.",
	ReasonBadResponse:    "Error processing LLM response.",
	ReasonInternal:       "An unexpected error occurred generating recommendations.",
}
