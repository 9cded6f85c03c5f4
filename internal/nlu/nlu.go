// Package nlu classifies chat utterances into the bot's fixed intents.
package nlu

import "context"

// Intent labels the bot routes on. An utterance the classifier cannot place
// gets IntentNone.
const (
	IntentGreeting   = "Greeting"
	IntentHelp       = "Help"
	IntentCancel     = "Cancel"
	IntentAzureFacts = "AzureFacts"
	IntentNone       = "None"
)

// Entity is a structured value extracted from the utterance. Value is the
// resolved (canonical) value, e.g. a fact key or the token "random".
type Entity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Result is the classification of one utterance.
type Result struct {
	Intent   string   `json:"intent"`
	Score    float64  `json:"score"`
	Entities []Entity `json:"entities"`
}

// Classifier is an external intent recognition service.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Result, error)
}
