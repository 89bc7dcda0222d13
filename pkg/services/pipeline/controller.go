package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sec-tools/inspector-notify/pkg/models/domain"
	"github.com/sec-tools/inspector-notify/pkg/services/notify"
)

const (
	// EventBridge identifiers of the events this pipeline handles.
	ExpectedSource     = "aws.inspector2"
	ExpectedDetailType = "Inspector2 Finding"

	activeStatus = "ACTIVE"

	// Minimum execution budget needed to start the model call.
	minRemaining = 30 * time.Second
)

// Recommender produces remediation guidance for an event. It never
// fails; degraded guidance is a fallback result, not an error.
type Recommender interface {
	GetRecommendation(ctx context.Context, event domain.Event) domain.RecommendationResult
}

// Controller runs one event through validation, enrichment, formatting
// and publishing.
type Controller interface {
	Process(ctx context.Context, payload json.RawMessage) (domain.Result, error)
}

type DefaultController struct {
	topicARN    string
	recommender Recommender
	publisher   notify.Publisher
}

func NewController(topicARN string, recommender Recommender, publisher notify.Publisher) *DefaultController {
	return &DefaultController{
		topicARN:    topicARN,
		recommender: recommender,
		publisher:   publisher,
	}
}

// Process disposes of a single event. The returned Result is always
// populated; err is non-nil only for rejected outcomes so operational
// monitoring can alert on them. Ignored events are normal and silent.
func (c *DefaultController) Process(ctx context.Context, payload json.RawMessage) (domain.Result, error) {
	logger := zerolog.Ctx(ctx)

	if c.topicARN == "" {
		logger.Error().Msg("sns topic arn is not configured")
		return rejected("missing required configuration: sns topic arn"), domain.ErrMissingTopic
	}

	var event domain.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		logger.Warn().Err(err).Msg("cannot decode event payload")
		return rejected("invalid event payload"), fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}

	logger.Info().
		Str("source", event.Source).
		Str("detail_type", event.DetailType).
		Str("account", event.Account).
		Str("region", event.Region).
		Msg("received event")

	if event.Source != ExpectedSource {
		logger.Info().Str("source", event.Source).Msg("ignoring event from unexpected source")
		return ignored("source is not " + ExpectedSource), nil
	}

	if event.DetailType != ExpectedDetailType {
		logger.Info().Str("detail_type", event.DetailType).Msg("ignoring non-finding event")
		return ignored("detail-type is not " + ExpectedDetailType), nil
	}

	if event.Detail == nil {
		logger.Warn().Msg("event is missing detail field")
		return rejected("invalid event structure: missing detail"), domain.ErrMissingDetail
	}

	if status := event.Detail.Status; status != "" && !strings.EqualFold(status, activeStatus) {
		logger.Info().Str("status", status).Msg("skipping non-active finding")
		return ignored("finding status is " + status), nil
	}

	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < minRemaining {
			logger.Warn().Dur("remaining", remaining).Msg("insufficient execution time remaining")
			return rejected("insufficient execution time remaining"), domain.ErrDeadline
		}
	}

	logger.Info().Msg("requesting remediation recommendation")
	recommendation := c.recommender.GetRecommendation(ctx, event)
	if recommendation.Fallback {
		logger.Warn().
			Str("reason", string(recommendation.Reason)).
			Msg("using fallback recommendation text")
	}

	subject := notify.BuildSubject(event.Detail)
	body := notify.BuildBody(event, payload, recommendation)

	logger.Info().Str("topic_arn", c.topicARN).Msg("publishing notification")
	messageID, err := c.publisher.Publish(ctx, subject, body)
	if err != nil {
		logger.Error().Err(err).Msg("failed to publish notification")
		return rejected("publish failed"), fmt.Errorf("%w: %v", domain.ErrPublish, err)
	}

	findingARN := event.Detail.FindingARN
	if findingARN == "" {
		findingARN = "N/A"
	}

	logger.Info().
		Str("message_id", messageID).
		Str("finding_arn", findingARN).
		Msg("notification sent")

	return domain.Result{
		Outcome:    domain.OutcomePublished,
		MessageID:  messageID,
		FindingARN: findingARN,
	}, nil
}

func ignored(reason string) domain.Result {
	return domain.Result{Outcome: domain.OutcomeIgnored, Reason: reason}
}

func rejected(reason string) domain.Result {
	return domain.Result{Outcome: domain.OutcomeRejected, Reason: reason}
}
