package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog"
	"github.com/sec-tools/inspector-notify/pkg/models/domain"
	"github.com/sec-tools/inspector-notify/pkg/services/config"
	"github.com/sec-tools/inspector-notify/pkg/services/notify/sns"
	"github.com/sec-tools/inspector-notify/pkg/services/pipeline"
	"github.com/sec-tools/inspector-notify/pkg/services/recommend"
	"github.com/sec-tools/inspector-notify/pkg/services/recommend/bedrock"
)

type handler struct {
	logger   zerolog.Logger
	pipeline pipeline.Controller
}

// Handle runs one EventBridge payload through the pipeline. Only a
// publish failure is returned to the Lambda runtime as an error so the
// delivery failure reaches operational alerting; every other outcome,
// including rejections, is reported through the result.
func (h *handler) Handle(ctx context.Context, payload json.RawMessage) (domain.Result, error) {
	ctx = h.logger.WithContext(ctx)

	result, err := h.pipeline.Process(ctx, payload)
	if err != nil && errors.Is(err, domain.ErrPublish) {
		return result, err
	}
	return result, nil
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	settings, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load settings")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithDefaultRegion(settings.AWSRegion),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load AWS SDK config")
	}

	recommender := recommend.NewController(bedrock.NewGenerator(awsCfg, settings.BedrockModelID))
	publisher := sns.NewPublisher(awsCfg, settings.SNSTopicARN)
	controller := pipeline.NewController(settings.SNSTopicARN, recommender, publisher)

	h := &handler{logger: logger, pipeline: controller}
	lambda.Start(h.Handle)
}
