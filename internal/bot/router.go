package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/techfacts/factbot/internal/botframework"
	"github.com/techfacts/factbot/internal/card"
	"github.com/techfacts/factbot/internal/conversation"
	"github.com/techfacts/factbot/internal/facts"
	"github.com/techfacts/factbot/internal/metrics"
	"github.com/techfacts/factbot/internal/nlu"
)

// FactResolver turns AzureFacts entities into an answer.
type FactResolver interface {
	Resolve(ctx context.Context, entities []nlu.Entity) (facts.Payload, error)
}

// Sender delivers a reply activity.
type Sender interface {
	Send(ctx context.Context, a *botframework.Activity) error
}

// Router answers one incoming message: classify, pick a flow, reply once.
// No state is carried between messages.
type Router struct {
	classifier nlu.Classifier
	resolver   FactResolver
	presenter  *card.Presenter
	sender     Sender
	convs      *conversation.Manager
	threshold  float64
	log        *zap.Logger
}

func NewRouter(c nlu.Classifier, r FactResolver, p *card.Presenter, s Sender, convs *conversation.Manager, threshold float64, log *zap.Logger) *Router {
	return &Router{
		classifier: c,
		resolver:   r,
		presenter:  p,
		sender:     s,
		convs:      convs,
		threshold:  threshold,
		log:        log,
	}
}

// HandleActivity is the botframework.ActivityHandler for message activities.
func (r *Router) HandleActivity(ctx context.Context, in *botframework.Activity) error {
	return r.convs.WithLock(in.Conversation.ID, func() error {
		reply := r.Respond(ctx, in)
		if err := r.sender.Send(ctx, reply); err != nil {
			metrics.RepliesFailed.Inc()
			return fmt.Errorf("sending reply: %w", err)
		}
		return nil
	})
}

// Respond builds the reply for in without sending it.
func (r *Router) Respond(ctx context.Context, in *botframework.Activity) *botframework.Activity {
	reply := botframework.NewReply(in)
	log := r.log.With(zap.String("conversation", in.Conversation.ID), zap.String("activity", in.ID))

	intent, entities := r.classify(ctx, in.Text, log)

	switch intent {
	case nlu.IntentGreeting:
		r.count(flowGreeting)
		r.attachCard(reply, card.Content{Title: welcomeTitle, Body: welcomeText, ImageRef: welcomeImage})
	case nlu.IntentHelp:
		r.count(flowHelp)
		r.attachCard(reply, card.Content{Title: helpTitle, Body: helpText, ImageRef: helpImage})
	case nlu.IntentCancel:
		r.count(flowCancel)
		reply.Text = cancelText
	case nlu.IntentAzureFacts:
		r.count(flowAzureFacts)
		r.answerFact(ctx, reply, entities, log)
	default:
		r.count(flowDefault)
		reply.Text = fmt.Sprintf(defaultTextFormat, in.Text)
	}
	return reply
}

func (r *Router) classify(ctx context.Context, text string, log *zap.Logger) (string, []nlu.Entity) {
	if strings.TrimSpace(text) == "" {
		return nlu.IntentNone, nil
	}

	res, err := r.classifier.Classify(ctx, text)
	if err != nil {
		metrics.ClassifierErrors.Inc()
		log.Error("router: classification failed", zap.Error(err))
		return nlu.IntentNone, nil
	}
	if res.Score < r.threshold {
		log.Debug("router: intent below threshold",
			zap.String("intent", res.Intent),
			zap.Float64("score", res.Score))
		return nlu.IntentNone, nil
	}

	log.Debug("router: classified", zap.String("intent", res.Intent), zap.Float64("score", res.Score))
	return res.Intent, res.Entities
}

func (r *Router) answerFact(ctx context.Context, reply *botframework.Activity, entities []nlu.Entity, log *zap.Logger) {
	payload, err := r.resolver.Resolve(ctx, entities)
	if err != nil {
		if errors.Is(err, facts.ErrStoreUnavailable) {
			log.Error("router: fact store unavailable", zap.Error(err))
		} else {
			log.Error("router: resolving fact", zap.Error(err))
		}
		reply.Text = storeUnavailableText
		return
	}

	if payload.Outcome != facts.OutcomeFound {
		reply.Text = payload.Body
		return
	}

	log.Info("router: answering fact", zap.String("fact", payload.Key))
	r.attachCard(reply, card.Content{Title: payload.Title, Body: payload.Body, ImageRef: payload.ImageRef})
}

func (r *Router) attachCard(reply *botframework.Activity, c card.Content) {
	reply.TextFormat = botframework.TextFormatMarkdown
	reply.Attachments = []botframework.Attachment{r.presenter.Thumbnail(c)}
}

func (r *Router) count(flow string) {
	metrics.MessagesHandled.WithLabelValues(flow).Inc()
}
