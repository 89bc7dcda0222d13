package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// PublishAPI is the slice of the SNS client the publisher needs.
type PublishAPI interface {
	Publish(
		ctx context.Context,
		params *sns.PublishInput,
		optFns ...func(*sns.Options),
	) (*sns.PublishOutput, error)
}

// Publisher sends notifications to a single SNS topic.
type Publisher struct {
	client   PublishAPI
	topicARN string
}

func NewPublisher(cfg aws.Config, topicARN string) *Publisher {
	return &Publisher{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
	}
}

// NewPublisherWithClient wires an explicit client, used by tests.
func NewPublisherWithClient(client PublishAPI, topicARN string) *Publisher {
	return &Publisher{client: client, topicARN: topicARN}
}

func (p *Publisher) Publish(ctx context.Context, subject, body string) (string, error) {
	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(body),
	})
	if err != nil {
		return "", fmt.Errorf("publish to %s: %w", p.topicARN, err)
	}
	return aws.ToString(out.MessageId), nil
}
