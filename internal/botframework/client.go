package botframework

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	tokenURL   = "https://login.microsoftonline.com/botframework.com/oauth2/v2.0/token"
	tokenScope = "https://api.botframework.com/.default"
)

// Connector posts reply activities to the Bot Framework Connector service.
type Connector struct {
	http *http.Client
}

// NewConnector builds a connector authenticated with the bot's app
// credentials. With an empty appID replies are sent unauthenticated, which is
// what the local emulator expects.
func NewConnector(appID, appPassword string) *Connector {
	base := &http.Client{Timeout: 15 * time.Second}
	if appID == "" {
		return &Connector{http: base}
	}

	cc := &clientcredentials.Config{
		ClientID:     appID,
		ClientSecret: appPassword,
		TokenURL:     tokenURL,
		Scopes:       []string{tokenScope},
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := cc.Client(ctx)
	client.Timeout = 15 * time.Second
	return &Connector{http: client}
}

// NewConnectorWithClient uses c as is for every request.
func NewConnectorWithClient(c *http.Client) *Connector {
	return &Connector{http: c}
}

// Send delivers a reply activity to the conversation it is addressed to.
// Reference: POST /v3/conversations/{conversationId}/activities/{activityId}
func (c *Connector) Send(ctx context.Context, a *Activity) error {
	if a.ServiceURL == "" {
		return errors.New("activity has no serviceUrl")
	}
	if a.Conversation.ID == "" {
		return errors.New("activity has no conversation id")
	}

	endpoint := strings.TrimRight(a.ServiceURL, "/") + "/v3/conversations/" + url.PathEscape(a.Conversation.ID) + "/activities"
	if a.ReplyToID != "" {
		endpoint += "/" + url.PathEscape(a.ReplyToID)
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshaling activity: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending activity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("connector status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
