package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	DefaultModelID = "amazon.titan-text-express-v1"
	DefaultRegion  = "us-west-2"
)

// Settings is the process configuration, read once at startup.
// SNSTopicARN has no default on purpose: its absence is a deployment
// error the pipeline reports on the first event.
type Settings struct {
	SNSTopicARN    string `mapstructure:"sns_topic_arn"`
	BedrockModelID string `mapstructure:"bedrock_model_id"`
	AWSRegion      string `mapstructure:"aws_region"`
}

// Load reads settings from the environment, overlaid by an optional
// config file when path is non-empty.
func Load(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("bedrock_model_id", DefaultModelID)
	v.SetDefault("aws_region", DefaultRegion)

	v.AutomaticEnv()
	_ = v.BindEnv("sns_topic_arn", "SNS_TOPIC_ARN")
	_ = v.BindEnv("bedrock_model_id", "BEDROCK_MODEL_ID")
	_ = v.BindEnv("aws_region", "AWS_REGION")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}
