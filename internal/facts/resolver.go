package facts

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/techfacts/factbot/internal/metrics"
	"github.com/techfacts/factbot/internal/nlu"
	"github.com/techfacts/factbot/internal/store"
)

const (
	randomToken = "random"

	unknownFactText = "Sorry, you requested an unknown fact."
	missingFactText = "Sorry, seems we are missing the fact, '%s'."
)

// Outcome tells the caller how a resolution ended.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeUnknownEntity
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeUnknownEntity:
		return "unknown_entity"
	case OutcomeNotFound:
		return "not_found"
	}
	return "unknown"
}

// Payload is the resolved answer for one AzureFacts message. For fallback
// outcomes only Body is set.
type Payload struct {
	Outcome  Outcome
	Key      string
	Title    string
	Body     string
	ImageRef string
}

// Finder is the read side of a fact store.
type Finder interface {
	FindFact(ctx context.Context, key string) (*store.Fact, error)
}

type Resolver struct {
	store   Finder
	timeout time.Duration
	log     *zap.Logger
	intn    func(n int) int
}

// NewResolver returns a Resolver whose store round-trips are bounded by timeout.
func NewResolver(s Finder, timeout time.Duration, log *zap.Logger) *Resolver {
	return &Resolver{store: s, timeout: timeout, log: log, intn: rand.IntN}
}

// Resolve picks the fact requested by the first entity and looks it up.
// The only error it returns is a *StoreError.
func (r *Resolver) Resolve(ctx context.Context, entities []nlu.Entity) (Payload, error) {
	if len(entities) == 0 {
		r.log.Info("resolver: no fact entity in request")
		metrics.FactLookups.WithLabelValues(OutcomeUnknownEntity.String()).Inc()
		return Payload{Outcome: OutcomeUnknownEntity, Body: unknownFactText}, nil
	}

	key := strings.TrimSpace(entities[0].Value)
	if key == randomToken {
		key = RandomKeys[r.intn(len(RandomKeys))]
	}

	fact, err := r.find(ctx, key)
	if err != nil {
		return Payload{}, &StoreError{Key: key, Err: err}
	}

	if fact == nil {
		r.log.Info("resolver: fact not found", zap.String("fact", key))
		metrics.FactLookups.WithLabelValues(OutcomeNotFound.String()).Inc()
		return Payload{
			Outcome: OutcomeNotFound,
			Key:     key,
			Body:    fmt.Sprintf(missingFactText, key),
		}, nil
	}

	metrics.FactLookups.WithLabelValues(OutcomeFound.String()).Inc()
	return Payload{
		Outcome:  OutcomeFound,
		Key:      key,
		Title:    fact.Title,
		Body:     fact.Body,
		ImageRef: fact.Image,
	}, nil
}

func (r *Resolver) find(ctx context.Context, key string) (*store.Fact, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	fact, err := r.store.FindFact(ctx, key)
	metrics.StoreLatency.Observe(time.Since(start).Seconds())

	if err == nil && ctx.Err() != nil {
		// Stores that ignore ctx still fail lookups that overran the deadline.
		err = ctx.Err()
	}
	if err != nil {
		metrics.FactLookups.WithLabelValues("store_unavailable").Inc()
		return nil, err
	}
	return fact, nil
}
