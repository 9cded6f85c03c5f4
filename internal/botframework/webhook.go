package botframework

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const maxActivityBytes = 1 << 20

// ActivityHandler is called for each incoming message activity.
type ActivityHandler func(ctx context.Context, a *Activity) error

type WebhookHandler struct {
	onMessage ActivityHandler
	log       *zap.Logger
}

func NewWebhookHandler(onMessage ActivityHandler, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{onMessage: onMessage, log: log}
}

// HandleMessages processes activities posted by the Bot Framework channel service.
// The reply goes out through the Connector before the request is acknowledged.
func (h *WebhookHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	var activity Activity
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxActivityBytes)).Decode(&activity); err != nil {
		h.log.Warn("webhook: failed to decode activity", zap.Error(err))
		http.Error(w, "invalid activity", http.StatusBadRequest)
		return
	}

	if activity.Type != ActivityTypeMessage {
		h.log.Debug("webhook: ignoring activity",
			zap.String("type", activity.Type),
			zap.String("conversation", activity.Conversation.ID))
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if err := h.onMessage(r.Context(), &activity); err != nil {
		h.log.Error("webhook: message handling failed",
			zap.String("conversation", activity.Conversation.ID),
			zap.String("activity", activity.ID),
			zap.Error(err))
	}

	w.WriteHeader(http.StatusAccepted)
}
