package api

// ProcessResponse is the HTTP rendering of a pipeline result.
type ProcessResponse struct {
	Outcome    string `json:"outcome"`
	Reason     string `json:"reason,omitempty"`
	MessageID  string `json:"message_id,omitempty"`
	FindingARN string `json:"finding_arn,omitempty"`
	Error      string `json:"error,omitempty"`
}
