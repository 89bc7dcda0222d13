package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sec-tools/inspector-notify/pkg/services/config"
	"github.com/sec-tools/inspector-notify/pkg/services/notify"
	"github.com/sec-tools/inspector-notify/pkg/services/notify/sns"
	"github.com/sec-tools/inspector-notify/pkg/services/pipeline"
	"github.com/sec-tools/inspector-notify/pkg/services/recommend"
	"github.com/sec-tools/inspector-notify/pkg/services/recommend/bedrock"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	eventPath string
	dryRun    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "inspector-notify",
		Short: "Process Amazon Inspector finding events",
	}

	processCmd := &cobra.Command{
		Use:   "process",
		Short: "Run a single finding event through the notification pipeline",
		RunE:  runProcess,
	}
	processCmd.Flags().StringVarP(&eventPath, "file", "f", "", "Path to the event JSON file")
	processCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to an optional settings file")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the notification instead of publishing it")
	_ = processCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(processCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runProcess(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	payload, err := os.ReadFile(eventPath)
	if err != nil {
		return fmt.Errorf("failed to read event file: %w", err)
	}

	settings, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithDefaultRegion(settings.AWSRegion),
	)
	if err != nil {
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	recommender := recommend.NewController(bedrock.NewGenerator(awsCfg, settings.BedrockModelID))

	var publisher notify.Publisher = sns.NewPublisher(awsCfg, settings.SNSTopicARN)
	topicARN := settings.SNSTopicARN
	if dryRun {
		publisher = &printPublisher{out: os.Stdout}
		if topicARN == "" {
			topicARN = "dry-run"
		}
	}

	controller := pipeline.NewController(topicARN, recommender, publisher)

	result, err := controller.Process(ctx, payload)
	if err != nil {
		logger.Error().Err(err).Str("outcome", string(result.Outcome)).Msg("pipeline failed")
	}

	return json.NewEncoder(os.Stdout).Encode(result)
}

// printPublisher renders the notification to stdout instead of SNS.
type printPublisher struct {
	out *os.File
}

func (p *printPublisher) Publish(_ context.Context, subject, body string) (string, error) {
	fmt.Fprintf(p.out, "Subject: %s\n\n%s\n", subject, body)
	return "dry-run", nil
}
