package main

import (
	"fmt"
	"net"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sec-tools/inspector-notify/pkg/server"
	"github.com/sec-tools/inspector-notify/pkg/services/config"
	"github.com/sec-tools/inspector-notify/pkg/services/notify/sns"
	"github.com/sec-tools/inspector-notify/pkg/services/pipeline"
	"github.com/sec-tools/inspector-notify/pkg/services/recommend"
	"github.com/sec-tools/inspector-notify/pkg/services/recommend/bedrock"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve the Inspector notification pipeline over HTTP",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to an optional settings file (environment variables apply otherwise)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

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
	publisher := sns.NewPublisher(awsCfg, settings.SNSTopicARN)
	controller := pipeline.NewController(settings.SNSTopicARN, recommender, publisher)

	logger.Info().
		Str("model_id", settings.BedrockModelID).
		Str("region", settings.AWSRegion).
		Msg("pipeline configured")

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msg("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Pipeline: controller,
		},
	})

	return api.Start()
}
