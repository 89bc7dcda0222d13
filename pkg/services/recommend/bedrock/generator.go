package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/sec-tools/inspector-notify/pkg/services/recommend"
)

// Fixed generation parameters; tuned for terse, low-variance
// remediation text rather than derived from the finding.
const (
	temperature   = 0.3
	topP          = 0.9
	maxTokenCount = 2048
)

const contentTypeJSON = "application/json"

// InvokeModelAPI is the slice of the Bedrock runtime client the
// generator needs.
type InvokeModelAPI interface {
	InvokeModel(
		ctx context.Context,
		params *bedrockruntime.InvokeModelInput,
		optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.InvokeModelOutput, error)
}

// Generator produces remediation text with an Amazon Titan text model.
type Generator struct {
	client  InvokeModelAPI
	modelID string
}

func NewGenerator(cfg aws.Config, modelID string) *Generator {
	return &Generator{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
	}
}

// NewGeneratorWithClient wires an explicit client, used by tests.
func NewGeneratorWithClient(client InvokeModelAPI, modelID string) *Generator {
	return &Generator{client: client, modelID: modelID}
}

type titanRequest struct {
	InputText            string      `json:"inputText"`
	TextGenerationConfig titanConfig `json:"textGenerationConfig"`
}

type titanConfig struct {
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"topP"`
	MaxTokenCount int     `json:"maxTokenCount"`
}

type titanResponse struct {
	Results []titanResult `json:"results"`
}

type titanResult struct {
	OutputText string `json:"outputText"`
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(titanRequest{
		InputText: prompt,
		TextGenerationConfig: titanConfig{
			Temperature:   temperature,
			TopP:          topP,
			MaxTokenCount: maxTokenCount,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode model request: %w", err)
	}

	resp, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.modelID),
		Body:        body,
		ContentType: aws.String(contentTypeJSON),
		Accept:      aws.String(contentTypeJSON),
	})
	if err != nil {
		return "", fmt.Errorf("invoke model %s: %w", g.modelID, err)
	}

	var decoded titanResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", recommend.ErrBadResponse, err)
	}

	if len(decoded.Results) == 0 {
		return "", recommend.ErrNoCompletion
	}

	return decoded.Results[0].OutputText, nil
}
