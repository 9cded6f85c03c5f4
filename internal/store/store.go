package store

import "context"

// Collection is the name of the bucket / table holding fact documents.
const Collection = "azuretechfacts"

// Fact is a single stored topic answer. JSON and column names follow the
// seed documents: fact, title, image, response.
type Fact struct {
	Key   string `json:"fact"`
	Title string `json:"title"`
	Image string `json:"image"`
	Body  string `json:"response"`
}

// FactStore is a read-mostly document store of facts keyed by Fact.Key.
//
// FindFact returns (nil, nil) when no document matches. Any non-nil error
// means the store could not be consulted.
type FactStore interface {
	FindFact(ctx context.Context, key string) (*Fact, error)
	ListFacts(ctx context.Context) ([]Fact, error)
	// ReplaceAll deletes every stored fact and inserts facts in their place.
	ReplaceAll(ctx context.Context, facts []Fact) error
	Ping(ctx context.Context) error
	Close() error
}
