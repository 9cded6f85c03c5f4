package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const factEntityType = "Facts"

// contentGenerator is the slice of genai.Models the classifier needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClassifier asks a Gemini model to label utterances with the same
// intents and fact entities a LUIS app would produce.
type GeminiClassifier struct {
	models   contentGenerator
	model    string
	factKeys []string
}

type geminiLabel struct {
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
	Fact   string  `json:"fact"`
}

func NewGeminiClassifier(ctx context.Context, apiKey, model string, factKeys []string) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiClassifier{models: client.Models, model: model, factKeys: factKeys}, nil
}

func (c *GeminiClassifier) Classify(ctx context.Context, text string) (*Result, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(c.systemPrompt(), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    c.schema(),
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	return parseGeminiLabel(resp.Text())
}

func (c *GeminiClassifier) systemPrompt() string {
	return "You classify chat messages sent to a bot that answers questions about Microsoft Azure.\n" +
		"Intents:\n" +
		"- Greeting: the user says hello or asks what the bot can do.\n" +
		"- Help: the user asks for help or which topics are available.\n" +
		"- Cancel: the user wants to stop or says goodbye.\n" +
		"- AzureFacts: the user asks about an Azure topic.\n" +
		"- None: anything else.\n" +
		"For AzureFacts set fact to the one topic key that matches, choosing from: " +
		strings.Join(c.factKeys, ", ") + ". Use \"random\" when the user asks for any or a random fact. " +
		"Leave fact empty when no key matches. Score is your confidence between 0 and 1."
}

func (c *GeminiClassifier) schema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"intent": {
				Type: genai.TypeString,
				Enum: []string{IntentGreeting, IntentHelp, IntentCancel, IntentAzureFacts, IntentNone},
			},
			"score": {Type: genai.TypeNumber},
			"fact":  {Type: genai.TypeString, Description: "Fact key for AzureFacts, otherwise empty"},
		},
		Required: []string{"intent", "score"},
	}
}

func parseGeminiLabel(raw string) (*Result, error) {
	var l geminiLabel
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &l); err != nil {
		return nil, fmt.Errorf("decoding gemini label: %w", err)
	}

	res := &Result{Intent: IntentNone}
	switch l.Intent {
	case IntentGreeting, IntentHelp, IntentCancel, IntentAzureFacts:
		res.Intent = l.Intent
		res.Score = l.Score
	}
	if res.Intent == IntentAzureFacts && strings.TrimSpace(l.Fact) != "" {
		res.Entities = []Entity{{Type: factEntityType, Value: l.Fact}}
	}
	return res, nil
}
