package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/techfacts/factbot/internal/bot"
	"github.com/techfacts/factbot/internal/botframework"
	"github.com/techfacts/factbot/internal/card"
	"github.com/techfacts/factbot/internal/config"
	"github.com/techfacts/factbot/internal/conversation"
	"github.com/techfacts/factbot/internal/facts"
	"github.com/techfacts/factbot/internal/nlu"
	"github.com/techfacts/factbot/internal/store"
	"github.com/techfacts/factbot/internal/webchat"
)

type keywordClassifier struct{}

func (keywordClassifier) Classify(_ context.Context, text string) (*nlu.Result, error) {
	switch {
	case strings.Contains(text, "hello"):
		return &nlu.Result{Intent: nlu.IntentGreeting, Score: 0.9}, nil
	case strings.Contains(text, "released"):
		return &nlu.Result{
			Intent:   nlu.IntentAzureFacts,
			Score:    0.9,
			Entities: []nlu.Entity{{Type: "Facts", Value: "released"}},
		}, nil
	}
	return &nlu.Result{Intent: nlu.IntentNone, Score: 0.9}, nil
}

type pingStore struct {
	store.FactStore
	err error
}

func (p *pingStore) Ping(context.Context) error { return p.err }

// connectorRecorder stands in for the Bot Framework connector service.
type connectorRecorder struct {
	mu    sync.Mutex
	paths []string
	sent  []map[string]any
}

func (c *connectorRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	json.NewDecoder(r.Body).Decode(&body)
	c.mu.Lock()
	c.paths = append(c.paths, r.URL.Path)
	c.sent = append(c.sent, body)
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

// testBot is the HTTP surface under test plus the fake connector replies land on.
type testBot struct {
	srv          *httptest.Server
	rec          *connectorRecorder
	connectorURL string
}

func newTestBot(t *testing.T, fs store.FactStore) *testBot {
	t.Helper()
	log := zaptest.NewLogger(t)

	rec := &connectorRecorder{}
	connector := httptest.NewServer(rec)
	t.Cleanup(connector.Close)

	router := bot.NewRouter(
		keywordClassifier{},
		facts.NewResolver(fs, time.Second, log),
		card.NewPresenter("https://icons.example.com"),
		botframework.NewConnectorWithClient(connector.Client()),
		conversation.NewManager(),
		0.1,
		log,
	)
	srv := httptest.NewServer(newHTTPHandler(fs, router, webchat.NewHandler("https://webchat.example.com/embed/bot", log), log))
	t.Cleanup(srv.Close)

	return &testBot{srv: srv, rec: rec, connectorURL: connector.URL}
}

func seededBolt(t *testing.T) store.FactStore {
	t.Helper()
	s, err := store.NewBoltStore(filepath.Join(t.TempDir(), "facts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.ReplaceAll(context.Background(), facts.Seed()))
	return s
}

func (b *testBot) post(t *testing.T, text string) *http.Response {
	t.Helper()
	body, err := json.Marshal(botframework.Activity{
		Type:         botframework.ActivityTypeMessage,
		ID:           "act-7",
		ServiceURL:   b.connectorURL,
		From:         botframework.ChannelAccount{ID: "user-1"},
		Recipient:    botframework.ChannelAccount{ID: "bot-1"},
		Conversation: botframework.ConversationAccount{ID: "conv-9"},
		Text:         text,
	})
	require.NoError(t, err)

	resp, err := http.Post(b.srv.URL+"/api/messages", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServe_FactRoundTrip(t *testing.T) {
	b := newTestBot(t, seededBolt(t))
	rec := b.rec

	resp := b.post(t, "when was azure released?")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.sent, 1)
	assert.Equal(t, "/v3/conversations/conv-9/activities/act-7", rec.paths[0])

	reply := rec.sent[0]
	assert.Equal(t, "message", reply["type"])
	assert.Equal(t, "act-7", reply["replyToId"])
	attachments := reply["attachments"].([]any)
	require.Len(t, attachments, 1)
	content := attachments[0].(map[string]any)["content"].(map[string]any)
	assert.Equal(t, "Azure Tech Facts", content["title"])
	assert.Equal(t, "First Released", content["subtitle"])
}

func TestServe_UnmatchedRepliesWithText(t *testing.T) {
	b := newTestBot(t, seededBolt(t))
	rec := b.rec

	resp := b.post(t, "what's the weather?")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.sent, 1)
	assert.Equal(t, "Sorry, I didn't understand: 'what's the weather?'.", rec.sent[0]["text"])
}

func TestServe_BadPayload(t *testing.T) {
	b := newTestBot(t, seededBolt(t))
	rec := b.rec

	resp, err := http.Post(b.srv.URL+"/api/messages", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, rec.sent)
}

func TestServe_HealthAndReady(t *testing.T) {
	b := newTestBot(t, seededBolt(t))

	for _, path := range []string{"/health", "/ready"} {
		resp, err := http.Get(b.srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestServe_ReadyFailsWhenStoreDown(t *testing.T) {
	b := newTestBot(t, &pingStore{FactStore: seededBolt(t), err: errors.New("connection refused")})

	resp, err := http.Get(b.srv.URL + "/ready")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServe_MetricsAndWebchat(t *testing.T) {
	b := newTestBot(t, seededBolt(t))
	b.post(t, "hello")

	resp, err := http.Get(b.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	chat, err := http.Get(b.srv.URL + "/webchat.js")
	require.NoError(t, err)
	defer chat.Body.Close()
	assert.Equal(t, http.StatusOK, chat.StatusCode)
}

func TestNewClassifier_DefaultsToLUIS(t *testing.T) {
	c, err := newClassifier(context.Background(), &config.Config{
		NLUProvider:     config.NLUProviderLUIS,
		LUISAPIHostName: "westus.api.cognitive.microsoft.com",
		LUISAppID:       "app",
		LUISAPIKey:      "key",
	})
	require.NoError(t, err)
	_, ok := c.(*nlu.LUISClient)
	assert.True(t, ok)
}
