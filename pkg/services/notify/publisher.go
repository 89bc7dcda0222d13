package notify

import "context"

// Publisher delivers a formatted notification to the messaging channel
// and returns the channel's message identifier.
type Publisher interface {
	Publish(ctx context.Context, subject, body string) (string, error)
}
