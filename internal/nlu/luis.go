package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// --- LUIS v2 prediction API ---
// Reference: https://westus.dev.cognitive.microsoft.com/docs/services/5819c76f40a6350ce09de1ac/operations/5819c77140a63516d81aee78

type luisResponse struct {
	Query            string       `json:"query"`
	TopScoringIntent *luisIntent  `json:"topScoringIntent"`
	Intents          []luisIntent `json:"intents"`
	Entities         []luisEntity `json:"entities"`
}

type luisIntent struct {
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
}

type luisEntity struct {
	Entity     string          `json:"entity"`
	Type       string          `json:"type"`
	StartIndex int             `json:"startIndex"`
	EndIndex   int             `json:"endIndex"`
	Resolution *luisResolution `json:"resolution"`
}

// luisResolution covers list entities (values) and prebuilt entities (value).
type luisResolution struct {
	Values []string `json:"values"`
	Value  string   `json:"value"`
}

type LUISClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewLUISClient targets https://<host>/luis/v2.0/apps/<appID>.
func NewLUISClient(host, appID, apiKey string) *LUISClient {
	return NewLUISClientWithBaseURL("https://"+host, appID, apiKey)
}

func NewLUISClientWithBaseURL(baseURL, appID, apiKey string) *LUISClient {
	return &LUISClient{
		endpoint: strings.TrimRight(baseURL, "/") + "/luis/v2.0/apps/" + url.PathEscape(appID),
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *LUISClient) Classify(ctx context.Context, text string) (*Result, error) {
	q := url.Values{}
	q.Set("subscription-key", c.apiKey)
	q.Set("verbose", "true")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("luis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("luis status %d: %s", resp.StatusCode, body)
	}

	var lr luisResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("decoding luis response: %w", err)
	}
	return lr.toResult(), nil
}

func (lr *luisResponse) toResult() *Result {
	res := &Result{Intent: IntentNone}

	top := lr.TopScoringIntent
	if top == nil {
		for i := range lr.Intents {
			if top == nil || lr.Intents[i].Score > top.Score {
				top = &lr.Intents[i]
			}
		}
	}
	if top != nil && top.Intent != "" {
		res.Intent = top.Intent
		res.Score = top.Score
	}

	for _, e := range lr.Entities {
		value := e.Entity
		if r := e.Resolution; r != nil {
			switch {
			case len(r.Values) > 0:
				value = r.Values[0]
			case r.Value != "":
				value = r.Value
			}
		}
		res.Entities = append(res.Entities, Entity{Type: e.Type, Value: value})
	}
	return res
}
