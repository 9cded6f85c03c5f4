// Package card renders resolved answers as Bot Framework cards.
package card

import (
	"strings"

	"github.com/techfacts/factbot/internal/botframework"
)

const (
	ProductTitle   = "Azure Tech Facts"
	LearnMoreURL   = "https://azure.microsoft.com"
	LearnMoreLabel = "Learn more..."
)

// Content is what a card shows below the product title.
type Content struct {
	Title    string
	Body     string
	ImageRef string
}

// Presenter resolves image references against a fixed base URL.
type Presenter struct {
	imageBaseURL string
}

func NewPresenter(imageBaseURL string) *Presenter {
	return &Presenter{imageBaseURL: strings.TrimRight(imageBaseURL, "/")}
}

// Thumbnail renders the compact card used in replies.
func (p *Presenter) Thumbnail(c Content) botframework.Attachment {
	return botframework.Attachment{
		ContentType: botframework.ContentTypeThumbnailCard,
		Content:     p.card(c),
	}
}

// Hero renders the expanded card variant.
func (p *Presenter) Hero(c Content) botframework.Attachment {
	return botframework.Attachment{
		ContentType: botframework.ContentTypeHeroCard,
		Content:     p.card(c),
	}
}

func (p *Presenter) card(c Content) botframework.Card {
	return botframework.Card{
		Title:    ProductTitle,
		Subtitle: c.Title,
		Text:     c.Body,
		Images:   []botframework.CardImage{{URL: p.ImageURL(c.ImageRef)}},
		Buttons: []botframework.CardAction{{
			Type:  botframework.ActionOpenURL,
			Title: LearnMoreLabel,
			Value: LearnMoreURL,
		}},
	}
}

// ImageURL returns <base>/<ref>.
func (p *Presenter) ImageURL(ref string) string {
	return p.imageBaseURL + "/" + ref
}
